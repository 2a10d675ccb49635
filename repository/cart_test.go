package repository

import (
	"testing"
	"time"

	"nexus-market/models"

	"github.com/stretchr/testify/require"
)

func TestMergeItemAppendsNewLine(t *testing.T) {
	now := time.Now()

	items := mergeItem(nil, 3, 2, now)
	require.Len(t, items, 1)
	require.Equal(t, int64(3), items[0].ProductID)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, now, items[0].AddedAt)
}

func TestMergeItemSumsDuplicateAdd(t *testing.T) {
	now := time.Now()

	items := mergeItem(nil, 3, 2, now)
	items = mergeItem(items, 3, 5, now.Add(time.Minute))

	require.Len(t, items, 1, "duplicate add must not create a second line")
	require.Equal(t, 7, items[0].Quantity)
	require.Equal(t, now, items[0].AddedAt, "addedAt keeps the original add time")
}

func TestMergeItemKeepsOtherLines(t *testing.T) {
	now := time.Now()
	items := []models.CartItem{
		{ProductID: 1, Quantity: 1, AddedAt: now},
		{ProductID: 2, Quantity: 4, AddedAt: now},
	}

	items = mergeItem(items, 2, 1, now)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, 5, items[1].Quantity)

	items = mergeItem(items, 9, 3, now)
	require.Len(t, items, 3)
	require.Equal(t, int64(9), items[2].ProductID)
}
