package tagmint

import "fmt"

// Candidates are the next-version proposals computed from the latest
// semantic tag.
type Candidates struct {
	Patch string // (major, minor, patch+1)
	Minor string // (major, minor+1, 0)
	Major string // (major+1, 0, 0)
}

// NextVersions computes the next patch/minor/major candidates from latest,
// which must be a KindSemantic tag. Components grow unbounded; there is no
// wraparound.
func NextVersions(latest Tag) Candidates {
	v := latest.Version

	return Candidates{
		Patch: FormatSemantic(v.Major, v.Minor, v.Patch+1),
		Minor: FormatSemantic(v.Major, v.Minor+1, 0),
		Major: FormatSemantic(v.Major+1, 0, 0),
	}
}

// FormatSemantic renders a triple in the semantic grammar.
func FormatSemantic(major, minor, patch int) string {
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}

// LatestSemantic returns the maximum semantic tag in tags under numeric
// (major, minor, patch) ordering, and false when none exists. Two textual
// tags normalizing to the same triple (leading zeros) tie-break to the
// lexically later raw string, keeping the result deterministic.
func LatestSemantic(c Classifier, tags []string) (Tag, bool) {
	var best Tag
	found := false

	for _, raw := range tags {
		t := c.Inspect(raw)
		if t.Kind != KindSemantic {
			continue
		}
		if !found {
			best, found = t, true
			continue
		}

		cmp := t.Version.Compare(best.Version)
		if cmp > 0 || (cmp == 0 && t.Raw > best.Raw) {
			best = t
		}
	}

	return best, found
}
