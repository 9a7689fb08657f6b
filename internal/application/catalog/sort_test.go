package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortSpec(t *testing.T) {
	t.Run("empty spec yields only the id tie-breaker", func(t *testing.T) {
		terms := ParseSortSpec("", "")
		assert.Equal(t, []SortTerm{{Field: "id"}}, terms)
	})

	t.Run("plain fields use the default order", func(t *testing.T) {
		terms := ParseSortSpec("price,sku", "desc")
		assert.Equal(t, []SortTerm{
			{Field: "price", Desc: true},
			{Field: "sku", Desc: true},
			{Field: "id"},
		}, terms)
	})

	t.Run("prefix and colon forms override the default", func(t *testing.T) {
		terms := ParseSortSpec("-price,+sku,description:desc,category_name:asc", "asc")
		assert.Equal(t, []SortTerm{
			{Field: "price", Desc: true},
			{Field: "sku", Desc: false},
			{Field: "description", Desc: true},
			{Field: "category_name", Desc: false},
			{Field: "id"},
		}, terms)
	})

	t.Run("unknown fields are dropped", func(t *testing.T) {
		terms := ParseSortSpec("price,version,created_at", "")
		assert.Equal(t, []SortTerm{
			{Field: "price"},
			{Field: "id"},
		}, terms)
	})

	t.Run("duplicates keep the first occurrence", func(t *testing.T) {
		terms := ParseSortSpec("-price,price:asc,price", "")
		assert.Equal(t, []SortTerm{
			{Field: "price", Desc: true},
			{Field: "id"},
		}, terms)
	})

	t.Run("unrecognized direction falls back to the default", func(t *testing.T) {
		terms := ParseSortSpec("price:sideways,sku", "desc")
		assert.Equal(t, []SortTerm{
			{Field: "price", Desc: true},
			{Field: "sku", Desc: true},
			{Field: "id"},
		}, terms)
	})

	t.Run("whitespace and empty tokens are tolerated", func(t *testing.T) {
		terms := ParseSortSpec(" price , , -sku ", "")
		assert.Equal(t, []SortTerm{
			{Field: "price"},
			{Field: "sku", Desc: true},
			{Field: "id"},
		}, terms)
	})
}

func TestBuildOrderBy(t *testing.T) {
	assert.Equal(t, "price desc, sku asc, id asc",
		BuildOrderBy([]SortTerm{
			{Field: "price", Desc: true},
			{Field: "sku"},
			{Field: "id"},
		}))
}
