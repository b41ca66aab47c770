package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/ledger"
)

// La función de transición es la única fuente de verdad sobre qué efecto
// produce un cambio de estado.
func TestTransition(t *testing.T) {
	cases := []struct {
		name      string
		oldStatus int
		newStatus int
		want      ledger.Effect
	}{
		{"pendiente a procesado aplica", ledger.StatusPending, ledger.StatusProcessed, ledger.EffectForward},
		{"procesado a pendiente revierte", ledger.StatusProcessed, ledger.StatusPending, ledger.EffectReverse},
		{"pendiente a pendiente no hace nada", ledger.StatusPending, ledger.StatusPending, ledger.EffectNone},
		{"procesado a procesado no hace nada", ledger.StatusProcessed, ledger.StatusProcessed, ledger.EffectNone},
		{"estado desconocido no hace nada", 7, ledger.StatusProcessed, ledger.EffectNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.Transition(tc.oldStatus, tc.newStatus))
		})
	}
}
