package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireReachesEveryListener(t *testing.T) {
	d := New()
	var got []Change
	d.Listen(RecordsChanged, func(p any) { panic("listener bug") })
	d.Listen(RecordsChanged, func(p any) { got = append(got, p.(Change)) })
	d.Listen("other", func(p any) { t.Error("wrong event delivered") })

	d.Fire(RecordsChanged, Change{Collection: "users", Op: "add", ID: 1})

	assert.Equal(t, []Change{{Collection: "users", Op: "add", ID: 1}}, got)
}

func TestZeroDispatcherAcceptsListeners(t *testing.T) {
	var d Dispatcher
	calls := 0
	d.Listen(RecordsChanged, func(any) { calls++ })
	d.Fire(RecordsChanged, Change{})
	assert.Equal(t, 1, calls)
}

func TestNilDispatcherIsSilent(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Fire(RecordsChanged, Change{})
	})
}
