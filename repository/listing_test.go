package repository

import (
	"testing"

	"github.com/orgdesk/orgdesk/utils"
	"github.com/stretchr/testify/assert"
)

func TestListQueryWindow(t *testing.T) {
	t.Run("ZeroValueIsUnwindowed", func(t *testing.T) {
		var q ListQuery
		assert.Equal(t, 0, q.Limit())
		assert.Equal(t, 0, q.Offset())
	})

	t.Run("FirstPage", func(t *testing.T) {
		q := ListQuery{}.WithPage(1)
		assert.Equal(t, utils.PageSize, q.Limit())
		assert.Equal(t, 0, q.Offset())
	})

	t.Run("LaterPagesSkipEarlierRows", func(t *testing.T) {
		q := ListQuery{}.WithPage(3)
		assert.Equal(t, utils.PageSize, q.Limit())
		assert.Equal(t, 2*utils.PageSize, q.Offset())
	})

	t.Run("PagesBelowOneStayUnwindowed", func(t *testing.T) {
		assert.Equal(t, 0, ListQuery{}.WithPage(0).Limit())
		assert.Equal(t, 0, ListQuery{}.WithPage(-5).Limit())
	})

	t.Run("AllDisablesTheWindow", func(t *testing.T) {
		q := ListQuery{}.WithPage(4).WithAll()
		assert.Equal(t, 0, q.Limit())
		assert.Equal(t, 0, q.Offset())
	})
}

func TestListQueryImmutability(t *testing.T) {
	base := ListQuery{}.WithSearch("acme")

	paged := base.WithPage(2)
	filtered := base.WithIn("industryType", []string{"Software"})

	assert.Equal(t, 0, base.Limit(), "deriving a paged copy must not window the base query")
	assert.Empty(t, base.in)
	assert.Len(t, filtered.in, 1)
	assert.Equal(t, utils.PageSize, paged.Limit())
}

func TestListQueryWithIn(t *testing.T) {
	t.Run("EmptyValueSetsAreDropped", func(t *testing.T) {
		q := ListQuery{}.WithIn("industryType", nil)
		assert.Empty(t, q.in)

		q = q.WithIn("industryType", []string{})
		assert.Empty(t, q.in)
	})

	t.Run("ClausesAccumulate", func(t *testing.T) {
		q := ListQuery{}.
			WithIn("industryType", []string{"Software", "Retail"}).
			WithIn("organizationType", []string{"Private Limited"})
		assert.Len(t, q.in, 2)
		assert.Equal(t, "industryType", q.in[0].Field)
		assert.Equal(t, []string{"Software", "Retail"}, q.in[0].Values)
	})
}

func TestListQueryWithSearch(t *testing.T) {
	q := ListQuery{}.WithSearch("  acme  ")
	assert.Equal(t, "acme", q.search)
}
