package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftState_TextRoundTrip(t *testing.T) {
	for st := DraftIdle; st <= DraftResolved; st++ {
		b, err := json.Marshal(st)
		require.NoError(t, err)

		var got DraftState
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, st, got)
	}

	assert.Equal(t, "unknown", DraftState(42).String())

	var bad DraftState
	assert.Error(t, json.Unmarshal([]byte(`"sleeping"`), &bad))
}

func TestPlayerState_Alive(t *testing.T) {
	assert.True(t, PlayerState{Health: 1}.Alive())
	assert.False(t, PlayerState{Health: 0}.Alive())
}
