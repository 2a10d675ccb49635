package controllers

import (
	"testing"

	"nexus-market/models"

	"github.com/stretchr/testify/require"
)

func TestBuildOrderItemsCapturesSnapshot(t *testing.T) {
	products := map[int64]models.Product{
		1: {ID: 1, Title: "Leather Jacket", Price: 120, Stock: 10},
		3: {ID: 3, Title: "Wireless Headphones", Price: 150, Stock: 8},
	}
	items := []orderItemRequest{
		{ProductID: 1, Quantity: 1, Price: 120},
		{ProductID: 3, Quantity: 2, Price: 150},
	}

	out := buildOrderItems(items, products)
	require.Len(t, out, 2)
	require.Equal(t, models.OrderItem{ProductID: 1, Quantity: 1, Price: 120, Title: "Leather Jacket"}, out[0])
	require.Equal(t, models.OrderItem{ProductID: 3, Quantity: 2, Price: 150, Title: "Wireless Headphones"}, out[1])

	// Mutating the catalog afterwards must not change the captured lines.
	p := products[1]
	p.Title = "Renamed Jacket"
	p.Price = 999
	products[1] = p
	require.Equal(t, "Leather Jacket", out[0].Title)
	require.Equal(t, float64(120), out[0].Price)
}

func TestDefaultShippingAddress(t *testing.T) {
	user := &models.User{
		Name:    "Jane Buyer",
		Address: "456 Buyer Ave, Shopping Town",
		Phone:   "+1234567891",
	}

	addr := defaultShippingAddress(user)
	require.Equal(t, "Jane Buyer", addr.FullName)
	require.Equal(t, "456 Buyer Ave, Shopping Town", addr.Address)
	require.Equal(t, "+1234567891", addr.Phone)
	require.Empty(t, addr.City)
	require.Empty(t, addr.ZipCode)
}
