package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndCycle(t *testing.T) {
	defer func() { Current = Default }()

	assert.Equal(t, []string{"default", "dracula", "gruvbox", "nord"}, List())
	assert.False(t, Set("solarized"))
	assert.Equal(t, "default", Current.Name)

	assert.True(t, Set("nord"))
	assert.Equal(t, "default", Next())
	assert.True(t, Set(Next()))
	assert.Equal(t, "dracula", Next())
}
