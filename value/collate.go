package value

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	collatorMu   sync.Mutex
	rootCollator = collate.New(language.Und)
)

// CompareStrings orders a and b by root-locale Unicode collation rather
// than raw byte comparison, the ordering enumerate()'s dict-key sort and
// the comparison operators' lexicographic fallback both rely on (spec
// §4.5.8, §4.10, §8 invariant 8). collate.Collator is not safe for
// concurrent use and parallel spread can compare strings from multiple
// goroutines at once, hence the mutex.
func CompareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return rootCollator.CompareString(a, b)
}
