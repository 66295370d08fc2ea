package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/paladar/pkg/event"
)

type message struct {
	key  string
	body string
}

type fakeSink struct {
	got []message
	err error
}

func (f *fakeSink) Publish(_ context.Context, key string, body []byte) error {
	f.got = append(f.got, message{key: key, body: string(body)})
	return f.err
}

func TestForwardPublishesChanges(t *testing.T) {
	events := event.New()
	sink := &fakeSink{}
	Forward(events, sink)

	events.Fire(event.RecordsChanged, event.Change{Collection: "orders", Op: "update", ID: 3})
	events.Fire("something.else", "ignored")

	require.Len(t, sink.got, 1)
	assert.Equal(t, "orders.update", sink.got[0].key)
	assert.JSONEq(t, `{"collection":"orders","op":"update","id":3}`, sink.got[0].body)
}

func TestForwardSwallowsPublishErrors(t *testing.T) {
	events := event.New()
	sink := &fakeSink{err: errors.New("broker down")}
	Forward(events, sink)

	assert.NotPanics(t, func() {
		events.Fire(event.RecordsChanged, event.Change{Collection: "users", Op: "add", ID: 1})
	})
	assert.Len(t, sink.got, 1)
}

func TestDialRequiresURL(t *testing.T) {
	_, err := Dial(Config{})
	assert.Error(t, err)
}
