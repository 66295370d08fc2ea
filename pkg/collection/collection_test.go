package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type order struct {
	ID   uint
	User uint
}

func TestHelpers(t *testing.T) {
	orders := []order{{1, 7}, {2, 0}, {3, 7}}

	assert.Equal(t, []uint{1, 2, 3}, Map(orders, func(o order) uint { return o.ID }))
	assert.Equal(t, map[uint][]order{7: {{1, 7}, {3, 7}}, 0: {{2, 0}}}, GroupBy(orders, func(o order) uint { return o.User }))
	assert.Empty(t, Map(nil, func(o order) uint { return o.ID }))
}
