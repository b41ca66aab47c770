package entity

import "time"

// User representa un usuario de la API (autenticación básica por JWT).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
