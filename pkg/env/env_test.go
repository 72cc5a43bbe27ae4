package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("SCENTVAULT_TEST_VALUE", "  ")
	assert.Equal(t, "fallback", Get("SCENTVAULT_TEST_VALUE", "fallback"))

	t.Setenv("SCENTVAULT_TEST_VALUE", " set ")
	assert.Equal(t, "set", Get("SCENTVAULT_TEST_VALUE", "fallback"))
}

func TestFirst(t *testing.T) {
	t.Setenv("SCENTVAULT_TEST_A", "")
	t.Setenv("SCENTVAULT_TEST_B", "b")

	got, ok := First("SCENTVAULT_TEST_A", "SCENTVAULT_TEST_B")
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = First("SCENTVAULT_TEST_A")
	assert.False(t, ok)
}
