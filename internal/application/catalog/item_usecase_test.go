package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
)

// El código derivado del nombre: sin acentos, mayúsculas, guiones por
// espacios y solo [A-Z0-9-].
func TestCodeFromName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Almacén Central", "ALMACEN-CENTRAL"},
		{"Tornillo 3/8", "TORNILLO-38"},
		{"  café_premium  ", "CAFE-PREMIUM"},
		{"Ñandú", "NANDU"},
		{"ya-con-guiones", "YA-CON-GUIONES"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, catalog.CodeFromName(tc.name), "nombre: %q", tc.name)
	}
}
