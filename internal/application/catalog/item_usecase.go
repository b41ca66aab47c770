package catalog

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemUseCase CRUD de artículos del catálogo.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create crea un artículo. Si no llega código se genera a partir del nombre
// normalizado (mayúsculas, sin acentos ni espacios).
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		code = CodeFromName(in.Name)
	}

	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update actualiza los campos presentes en el request.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Cost = *in.Cost
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID devuelve un artículo.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(id)
}

// List devuelve artículos paginados.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(limit, offset)
}

// CodeFromName deriva un código de artículo a partir del nombre: NFD para
// separar los acentos, se descartan las marcas diacríticas ("Almacén" →
// "Almacen"), mayúsculas y guiones en lugar de espacios.
func CodeFromName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(plain)) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}
