package reply

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProberOfflineWithoutModel(t *testing.T) {
	p := NewProber(&Engine{}, 5*time.Second)

	assert.Equal(t, StatusOffline, p.Status(), "status before any refresh")
	assert.Equal(t, StatusOffline, p.Refresh())
}

func TestProberStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewProber(&Engine{}, 10*time.Millisecond)
	p.Start(ctx)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StatusOffline, p.Status())

	p.Stop()
	p.Stop() // idempotent
}
