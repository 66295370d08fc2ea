// Package repositories maps the domain operations on users and orders onto
// store collections. Each call opens a handle scoped to one collection and the
// narrowest mode it needs.
package repositories

import (
	"github.com/shashiranjanraj/paladar/pkg/event"
	"github.com/shashiranjanraj/paladar/pkg/metrics"
)

// notify records a successful write and tells listeners about it.
func notify(events *event.Dispatcher, collection, op string, id uint) {
	metrics.RecordMutations.WithLabelValues(collection, op).Inc()
	events.Fire(event.RecordsChanged, event.Change{Collection: collection, Op: op, ID: id})
}
