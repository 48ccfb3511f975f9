package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/islesim/internal/event"
	"github.com/udisondev/islesim/internal/model"
)

func TestMetrics_ObserveTick(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTick(2 * time.Millisecond)
	m.ObserveTick(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.tickDuration))
}

func TestMetrics_SetPopulation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetPopulation(Population{
		EnemiesAlive:       7,
		EnemiesDead:        2,
		ResourcesAvailable: 4,
		ResourcesDepleted:  1,
		Drops:              3,
		PendingRespawns:    3,
	})

	assert.Equal(t, 7.0, testutil.ToFloat64(m.enemies.WithLabelValues("alive")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.enemies.WithLabelValues("dead")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.resources.WithLabelValues("available")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resources.WithLabelValues("depleted")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.drops))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pending))
}

func TestMetrics_Publisher(t *testing.T) {
	m := New(prometheus.NewRegistry())
	rec := event.NewRecorder()
	pub := m.Publisher(rec)

	pub.Publish(event.EnemyDefeated{EnemyID: 1, Kind: model.KindScout})
	pub.Publish(event.EnemyDefeated{EnemyID: 2, Kind: model.KindScout})
	pub.Publish(event.RegionUnlocked{Region: model.GridPos{X: 1, Y: 1}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("enemy_defeated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("region_unlocked")))
	assert.Len(t, rec.Events(), 3, "events forwarded")

	assert.NotPanics(t, func() {
		m.Publisher(nil).Publish(event.EnemyLeashed{EnemyID: 1})
	})
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestServe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveTick(time.Millisecond)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, "/metrics", reg) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.True(t, strings.Contains(body, "islesim_ticks_total 1"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
