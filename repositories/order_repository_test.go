package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-shop/models"
)

func TestOrderLinesFrom(t *testing.T) {
	items, total := orderLinesFrom([]models.CartItem{
		{ProductID: 1, ProductName: "A", ProductPrice: 9.99, Quantity: 2},
		{ProductID: 2, ProductName: "B", ProductPrice: 0.01, Quantity: 1},
	})

	require.Len(t, items, 2)
	assert.InDelta(t, 19.99, total, 0.001)
	assert.Equal(t, 9.99, items[0].Price)
	assert.Equal(t, "A", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, items[1].ProductID)
}

func TestOrderLinesFromEmpty(t *testing.T) {
	items, total := orderLinesFrom(nil)
	assert.Empty(t, items)
	assert.Equal(t, 0.0, total)
}
