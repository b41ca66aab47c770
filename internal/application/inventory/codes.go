package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// newDocumentCode genera un código legible y único para un documento
// (ej. "TRF-3F2A9C41").
func newDocumentCode(prefix string) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s", prefix, short)
}
