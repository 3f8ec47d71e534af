package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"rds-fpgrowth/rock-share/global/model/assoc"
)

func collect(items []assoc.ItemID, maxLen int) []string {
	var out []string
	ForEachSubset(items, maxLen, func(subset []assoc.ItemID, _ []int) bool {
		out = append(out, assoc.Key(subset))
		return true
	})
	return out
}

func TestForEachSubset(t *testing.T) {
	items := []assoc.ItemID{1, 4, 7}
	assert.Equal(t, []string{"1", "4", "7", "1,4", "1,7", "4,7", "1,4,7"}, collect(items, 0))
	assert.Equal(t, []string{"1", "4", "7", "1,4", "1,7", "4,7"}, collect(items, 2))
	assert.Equal(t, collect(items, 0), collect(items, 10))
	assert.Empty(t, collect(nil, 0))
	assert.Len(t, collect([]assoc.ItemID{0, 1, 2, 3, 4, 5}, 0), 63)
}

func TestForEachSubsetIndexes(t *testing.T) {
	items := []assoc.ItemID{5, 6, 8}
	ForEachSubset(items, 0, func(subset []assoc.ItemID, idx []int) bool {
		assert.Equal(t, len(subset), len(idx))
		for i, j := range idx {
			assert.Equal(t, items[j], subset[i])
		}
		return true
	})
}

func TestForEachSubsetStop(t *testing.T) {
	n := 0
	ForEachSubset([]assoc.ItemID{0, 1, 2, 3}, 0, func([]assoc.ItemID, []int) bool {
		n++
		return n < 5
	})
	assert.Equal(t, 5, n)
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewInvalidParameter("min_support", 1.5, "[0,1]"))
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.False(t, errors.Is(err, ErrValidation))
	var ipe *InvalidParameterError
	assert.True(t, errors.As(err, &ipe))
	assert.Equal(t, "min_support", ipe.Name)
	assert.Contains(t, err.Error(), "min_support=1.5")

	assert.True(t, errors.Is(&ValidationError{Row: 3, Reason: "empty"}, ErrValidation))
	assert.Contains(t, (&ValidationError{Row: 3, Reason: "empty"}).Error(), "row 3")

	assert.PanicsWithError(t, "internal invariant violated: broken 7", func() { Fatalf("broken %d", 7) })
	func() {
		defer func() {
			r := recover()
			assert.True(t, IsInternal(r))
		}()
		Fatalf("x")
	}()
	assert.False(t, IsInternal("plain string"))
	assert.False(t, IsInternal(errors.New("other")))
}
