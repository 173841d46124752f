package tagmint

// AncestryQueries is the read-only slice of the repository collaborator
// the resolver consults. All methods must be free of side effects.
type AncestryQueries interface {
	// BranchExists reports whether a local branch with this name exists.
	BranchExists(name string) (bool, error)

	// MergeBase returns the common-ancestor commit of two branches, or
	// found=false when the branches share no history.
	MergeBase(branch, other string) (hash string, found bool, err error)

	// TagsMergedInto lists the tag names reachable from the given commit.
	TagsMergedInto(hash string) ([]string, error)
}

// Resolver determines the semantic tag that best represents the point a
// branch diverged from the main line.
type Resolver struct {
	cls Classifier
	opt Options
}

// NewResolver builds a resolver for the given policy options.
func NewResolver(opt Options) Resolver {
	opt = opt.normalized()

	return Resolver{cls: NewClassifier(opt), opt: opt}
}

// ResolveBase resolves the base tag for branch. In order, first success
// wins:
//
//  1. Pick the first existing main-line candidate branch.
//  2. Find the merge base between branch and the main line, then take the
//     maximum semantic tag merged into it.
//  3. Fall back to the global maximum semantic tag across allTags.
//
// Missing main line, missing merge base, or no reachable semantic tag all
// fall through to the global maximum; ok=false means no semantic tag
// exists anywhere. err reports collaborator failures only. The resolution
// is deterministic for a fixed repository state and performs no mutation.
func (r Resolver) ResolveBase(q AncestryQueries, branch string, allTags []string) (Tag, bool, error) {
	mainline := ""
	for _, cand := range r.opt.MainlineCandidates {
		exists, err := q.BranchExists(cand)
		if err != nil {
			return Tag{}, false, err
		}
		if exists {
			mainline = cand
			break
		}
	}

	if mainline != "" {
		hash, found, err := q.MergeBase(branch, mainline)
		if err != nil {
			return Tag{}, false, err
		}
		if found {
			merged, err := q.TagsMergedInto(hash)
			if err != nil {
				return Tag{}, false, err
			}
			if t, ok := LatestSemantic(r.cls, merged); ok {
				return t, true, nil
			}
		}
	}

	t, ok := LatestSemantic(r.cls, allTags)

	return t, ok, nil
}
