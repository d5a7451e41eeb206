package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type channelEmitter struct {
	got chan *Event
	err error
}

func (e *channelEmitter) Emit(_ context.Context, event *Event) error {
	e.got <- event
	return e.err
}

func TestEmitAsync_DeliversEvent(t *testing.T) {
	emitter := &channelEmitter{got: make(chan *Event, 1)}
	event := &Event{EventType: "screen_render", Screen: "/dashboard/hr", Outcome: "rendered"}

	EmitAsync(emitter, context.Background(), event)

	select {
	case got := <-emitter.got:
		if got != event {
			t.Errorf("emitted %+v, want the same event", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("emit never happened")
	}
}

func TestEmitAsync_NilEmitterIsNoop(t *testing.T) {
	// Must not panic or spawn anything.
	EmitAsync(nil, context.Background(), &Event{EventType: "login"})
}

func TestEmitAsync_NilEventIsNoop(t *testing.T) {
	emitter := &channelEmitter{got: make(chan *Event, 1)}

	EmitAsync(emitter, context.Background(), nil)

	select {
	case got := <-emitter.got:
		t.Errorf("unexpected emit %+v for nil event", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEmitAsync_EmitErrorDoesNotPropagate(t *testing.T) {
	emitter := &channelEmitter{got: make(chan *Event, 1), err: errors.New("collector down")}

	EmitAsync(emitter, context.Background(), &Event{EventType: "route_denied"})

	select {
	case <-emitter.got:
	case <-time.After(2 * time.Second):
		t.Fatal("emit never happened")
	}
}
