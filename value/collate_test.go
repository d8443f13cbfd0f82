package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCompareStringsOrdersRootLocale exercises the collation CompareStrings
// uses for dict-key sort (spec §4.5.8) and the comparison-operator
// lexicographic fallback (spec §4.10), rather than raw byte comparison.
func TestCompareStringsOrdersRootLocale(t *testing.T) {
	t.Parallel()
	assert.Negative(t, CompareStrings("apple", "banana"))
	assert.Positive(t, CompareStrings("banana", "apple"))
	assert.Zero(t, CompareStrings("apple", "apple"))
}

// TestDictSortedKeysUsesCollation verifies Dict.SortedKeys orders via
// CompareStrings, not raw insertion or byte order.
func TestDictSortedKeysUsesCollation(t *testing.T) {
	t.Parallel()
	d := NewDict()
	d.Set("banana", Num(1))
	d.Set("apple", Num(2))
	d.Set("cherry", Num(3))

	assert.Equal(t, []string{"apple", "banana", "cherry"}, d.SortedKeys())
	assert.Equal(t, []string{"banana", "apple", "cherry"}, d.Keys(), "Keys must stay insertion order")
}
