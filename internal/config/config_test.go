package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PIZZA_STATE_DIR", t.TempDir())
	cfg, rest, err := New([]string{"ls"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ls"}, rest)
	assert.Equal(t, "default", cfg.Bucket)
	assert.Equal(t, "pizzas", cfg.Collection)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PIZZA_STATE_DIR", t.TempDir())
	t.Setenv("PIZZA_COLLECTION", "from-env")
	t.Setenv("PIZZA_STORE", "sqlite")

	cfg, rest, err := New([]string{"-collection", "from-flag", "-timeout", "3s"})
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "from-flag", cfg.Collection)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestInvalid(t *testing.T) {
	t.Setenv("PIZZA_STATE_DIR", t.TempDir())

	_, _, err := New([]string{"-store", "redis"})
	assert.Error(t, err)

	_, _, err = New([]string{"-timeout", "0s"})
	assert.Error(t, err)

	t.Setenv("PIZZA_TIMEOUT", "soon")
	_, _, err = New(nil)
	assert.Error(t, err)
}
