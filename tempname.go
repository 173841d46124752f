package tagmint

import "fmt"

// Inventory is a set of known tag names, usually one snapshot of the
// local or remote tag list. Local and remote snapshots are independent
// and may diverge transiently.
type Inventory map[string]struct{}

// NewInventory builds an Inventory from a tag name slice.
func NewInventory(tags []string) Inventory {
	inv := make(Inventory, len(tags))
	for _, t := range tags {
		inv[t] = struct{}{}
	}

	return inv
}

// Has reports whether name is in the inventory.
func (i Inventory) Has(name string) bool {
	_, ok := i[name]
	return ok
}

// TemporaryTag renders a temporary tag name for the (base, segment) pair.
func TemporaryTag(base, segment string, suffix int) string {
	return fmt.Sprintf("%s_%s.%d", base, segment, suffix)
}

// NextSuffix probes suffix 1, 2, 3, ... and returns the first value whose
// temporary tag for the (base, segment) pair does not exist yet. The scan
// is O(n) in the number of existing suffixes for the pair; n stays small
// in practice and no upper bound is enforced.
func (i Inventory) NextSuffix(base, segment string) int {
	for n := 1; ; n++ {
		if !i.Has(TemporaryTag(base, segment, n)) {
			return n
		}
	}
}

// LastTag returns the most recent existing temporary tag for the
// (base, segment) pair, or false when none exists yet.
func (i Inventory) LastTag(base, segment string) (string, bool) {
	n := i.NextSuffix(base, segment) - 1
	if n < 1 {
		return "", false
	}

	return TemporaryTag(base, segment, n), true
}
