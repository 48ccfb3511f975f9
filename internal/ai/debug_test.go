package ai

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/islesim/internal/model"
)

func TestEnableDebugLogging(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	tests := []struct {
		name    string
		enabled bool
	}{
		{"enable", true},
		{"disable", false},
		{"enable again", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnableDebugLogging(tt.enabled)
			assert.Equal(t, tt.enabled, IsDebugEnabled())
		})
	}
}

func TestDriver_TickWithDebugLogging(t *testing.T) {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})))
	EnableDebugLogging(true)
	t.Cleanup(func() {
		EnableDebugLogging(false)
		slog.SetDefault(prev)
	})

	a := newTestEnemy(1, model.Vec2{})
	a.GroupID = "solo"
	a.Stats.PackAggro = true
	d, _ := newTestDriver(t, nil, a)

	assert.NotPanics(t, func() {
		d.Tick(0.1, hero(15, 0))
		d.Tick(0.1, hero(15, 0))
	})
	assert.Equal(t, model.StateAttack, a.AI.State)
}
