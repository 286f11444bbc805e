package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "aegis/pkg/domain-errors"
)

// TestParseRecipientID validates the parsing invariant: IDs must be valid,
// non-empty, non-nil UUIDs. Parsing happens at the trust boundary so nothing
// downstream has to re-check.
func TestParseRecipientID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRecipientID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseRecipientID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRecipientID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseRecipientID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, RecipientID(validUUID), id)
	})
}

func TestRecipientIDRoundTrip(t *testing.T) {
	id := NewRecipientID()
	require.False(t, id.IsNil())

	text, err := id.MarshalText()
	require.NoError(t, err)

	var parsed RecipientID
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, id, parsed)
}
