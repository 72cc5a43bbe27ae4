package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDPrefersExplicitInstance(t *testing.T) {
	t.Setenv("SCENTVAULT_INSTANCE_ID", "web-7")
	t.Setenv("DYNO", "web.1")
	assert.Equal(t, "web-7", ID())
}

func TestIDFallsBackToPlatformName(t *testing.T) {
	t.Setenv("SCENTVAULT_INSTANCE_ID", "")
	t.Setenv("DYNO", "web.1")
	assert.Equal(t, "web.1", ID())
}

func TestIDNeverEmpty(t *testing.T) {
	t.Setenv("SCENTVAULT_INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	t.Setenv("K_REVISION", "")
	assert.NotEmpty(t, ID())
}
