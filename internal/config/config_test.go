package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colonnes/game"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 50*time.Millisecond, c.Tick)
	assert.Equal(t, game.DefaultWaitDelay, c.WaitDelay)
	assert.Equal(t, game.DefaultDarkenDelay, c.DarkenDelay)
	assert.Equal(t, game.DefaultOpponentDelay, c.OpponentDelay)
	assert.False(t, c.Dev)
}

func TestParseEnvFallbacks(t *testing.T) {
	c, err := Parse(nil, env(map[string]string{
		"PORT":                    "9000",
		"COLONNES_DEV":            "yes",
		"COLONNES_SEED":           "7",
		"COLONNES_OPPONENT_DELAY": "250ms",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.True(t, c.Dev)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, 250*time.Millisecond, c.OpponentDelay)
}

func TestFlagsOverrideEnv(t *testing.T) {
	c, err := Parse([]string{"-addr", "127.0.0.1:1234", "-tick", "10ms"}, env(map[string]string{"COLONNES_ADDR": ":1"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", c.Addr)
	assert.Equal(t, 10*time.Millisecond, c.Tick)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]string{"-tick", "0s"}, env(nil))
	assert.Error(t, err)
	_, err = Parse([]string{"-max-parties", "0"}, env(nil))
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	c, err := Parse([]string{"-darken-delay", "3s"}, env(nil))
	require.NoError(t, err)
	r := c.Rules(game.ModeMulti)
	assert.Equal(t, game.ModeMulti, r.Mode)
	assert.Equal(t, 3*time.Second, r.DarkenDelay)
	assert.False(t, r.HasOpponent())
	assert.True(t, c.Rules(game.ModeSolo).HasOpponent())
}
