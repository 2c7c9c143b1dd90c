package refresh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturecast/fixturecast/internal/season"
)

func TestHolderEmptyUntilFirstSet(t *testing.T) {
	h := &Holder{}

	export, builtAt := h.Get()
	assert.Nil(t, export)
	assert.True(t, builtAt.IsZero())
}

func TestHolderSetPublishes(t *testing.T) {
	h := &Holder{}
	h.Set(&season.Export{CurrentWeek: 7})

	export, builtAt := h.Get()
	require.NotNil(t, export)
	assert.Equal(t, 7, export.CurrentWeek)
	assert.False(t, builtAt.IsZero())
}
