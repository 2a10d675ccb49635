package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseListQueryDefaults(t *testing.T) {
	q := parseListQuery(url.Values{})

	require.Equal(t, "", q.Category)
	require.Equal(t, "", q.SortKey)
	require.Equal(t, 1, q.Page)
	require.Equal(t, defaultPageLimit, q.Limit)
}

func TestParseListQueryFull(t *testing.T) {
	q := parseListQuery(url.Values{
		"category": {"Clothing"},
		"_sort":    {"price"},
		"_order":   {"desc"},
		"_page":    {"3"},
		"_limit":   {"5"},
	})

	require.Equal(t, "Clothing", q.Category)
	require.Equal(t, "price", q.SortKey)
	require.True(t, q.SortDesc)
	require.Equal(t, 3, q.Page)
	require.Equal(t, 5, q.Limit)
}

func TestParseListQuerySortKeyMapping(t *testing.T) {
	q := parseListQuery(url.Values{"_sort": {"createdAt"}})
	require.Equal(t, "created_at", q.SortKey)

	q = parseListQuery(url.Values{"_sort": {"id"}})
	require.Equal(t, "_id", q.SortKey)
}

func TestParseListQueryIgnoresUnknownSortKey(t *testing.T) {
	q := parseListQuery(url.Values{
		"_sort":  {"password"},
		"_order": {"desc"},
	})

	require.Equal(t, "", q.SortKey)
	require.False(t, q.SortDesc)
}

func TestParseListQueryRejectsBadPagination(t *testing.T) {
	q := parseListQuery(url.Values{
		"_page":  {"0"},
		"_limit": {"-5"},
	})
	require.Equal(t, 1, q.Page)
	require.Equal(t, defaultPageLimit, q.Limit)

	q = parseListQuery(url.Values{
		"_page":  {"abc"},
		"_limit": {"101"},
	})
	require.Equal(t, 1, q.Page)
	require.Equal(t, defaultPageLimit, q.Limit, "limit above the cap falls back to the default")
}
