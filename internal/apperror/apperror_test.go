package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), KindInternal},
		{"validation", Validation("bad %s", "input"), KindValidation},
		{"not found", NotFound("booking %d not found", 5), KindNotFound},
		{"authorization", Authorization("forbidden"), KindAuthorization},
		{"conflict", Conflict(MsgConflictingSlot), KindConflict},
		{"state", State(MsgSlotInPast), KindState},
		{"exhausted", ResourceExhausted(MsgNoHoursLeft), KindResourceExhausted},
		{"wrapped", fmt.Errorf("create booking: %w", Conflict(MsgBookingExists)), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("allocate: %w", ResourceExhausted(MsgNoHoursLeft))

	assert.True(t, Is(err, KindResourceExhausted))
	assert.False(t, Is(err, KindConflict))
	assert.False(t, Is(nil, KindInternal))
	assert.Equal(t, MsgNoHoursLeft, MessageOf(err))
}

func TestWrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindConflict, cause, MsgAlreadyExists)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "already exists: duplicate key", err.Error())
	assert.Equal(t, MsgAlreadyExists, MessageOf(err))
}
