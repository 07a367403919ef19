package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent string

func (e testEvent) Name() string { return string(e) }

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var hits int32

	bus.Subscribe("ticket.updated", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&hits, 1)
		return nil
	})
	bus.Subscribe("ticket.updated", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&hits, 1)
		return errors.New("listener failure is only logged")
	})
	bus.Subscribe("ticket.deleted", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&hits, 100)
		return nil
	})

	bus.Publish(testEvent("ticket.updated"))
	bus.Publish(testEvent("etapa.created"))
	bus.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
