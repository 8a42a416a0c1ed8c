package businessflow

import (
	"testing"

	"github.com/orgdesk/orgdesk/app/dto"
	"github.com/orgdesk/orgdesk/utils"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	t.Run("NilParamsYieldZeroQuery", func(t *testing.T) {
		q := BuildListQuery(nil)
		assert.Equal(t, 0, q.Limit())
		assert.Equal(t, 0, q.Offset())
	})

	t.Run("NumericPageWindowsTheQuery", func(t *testing.T) {
		q := BuildListQuery(&dto.ListParams{Page: "2"})
		assert.Equal(t, utils.PageSize, q.Limit())
		assert.Equal(t, utils.PageSize, q.Offset())
	})

	t.Run("PageInputIsTrimmed", func(t *testing.T) {
		q := BuildListQuery(&dto.ListParams{Page: " 3 "})
		assert.Equal(t, 2*utils.PageSize, q.Offset())
	})

	t.Run("NonNumericPageLeavesQueryUnwindowed", func(t *testing.T) {
		for _, page := range []string{"", "abc", "1.5", "two"} {
			q := BuildListQuery(&dto.ListParams{Page: page})
			assert.Equal(t, 0, q.Limit(), "page %q must not window the query", page)
		}
	})

	t.Run("AllOverridesThePage", func(t *testing.T) {
		q := BuildListQuery(&dto.ListParams{Page: "2", All: true})
		assert.Equal(t, 0, q.Limit())
		assert.Equal(t, 0, q.Offset())
	})
}

func TestDedupeIDs(t *testing.T) {
	t.Run("PreservesFirstOccurrenceOrder", func(t *testing.T) {
		assert.Equal(t, []uint{3, 1, 2}, DedupeIDs([]uint{3, 1, 3, 2, 1, 1}))
	})

	t.Run("AlreadyDistinct", func(t *testing.T) {
		assert.Equal(t, []uint{1, 2, 3}, DedupeIDs([]uint{1, 2, 3}))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, DedupeIDs(nil))
	})
}
