package entity

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase_BeforeCreate(t *testing.T) {
	t.Run("AssignsID", func(t *testing.T) {
		var b Base
		assert.True(t, b.IsNew())

		require.NoError(t, b.BeforeCreate(nil))
		assert.NotEqual(t, uuid.Nil, b.ID)
		assert.False(t, b.IsNew())
	})

	t.Run("KeepsExistingID", func(t *testing.T) {
		id := uuid.New()
		b := Base{ID: id}

		require.NoError(t, b.BeforeCreate(nil))
		assert.Equal(t, id, b.ID)
	})
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}

func TestNotFoundError(t *testing.T) {
	id := uuid.New()
	err := fmt.Errorf("service: failed: %w", NewNotFound("Banner", id))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Banner with key '"+id.String()+"' not found")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Banner", nf.Entity)
}
