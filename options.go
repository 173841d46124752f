package tagmint

import "strings"

// Options configures the tag policy. The struct is passed by value into
// NewClassifier / NewResolver and never mutated afterwards; there is no
// process-wide configuration state.
type Options struct {
	// Projects lists the uppercase project codes accepted by the ticket
	// grammar (PROJECT-<n>.<n>). Codes are upper-cased and trimmed on
	// normalization; an empty list disables the ticket grammar.
	Projects []string

	// MainlineCandidates are the branch names treated as the main line,
	// in preference order. The base-tag resolver picks the first one
	// that exists locally.
	MainlineCandidates []string

	// FirstDevelopmentTag and FirstReleaseTag are proposed when no
	// semantic tag exists in the repository yet. The version calculator
	// is not consulted in that case.
	FirstDevelopmentTag string
	FirstReleaseTag     string

	// Remote is the remote name used for pushes and remote cleanup.
	Remote string
}

// DefaultOptions returns the stock policy:
//
//   - Projects:            {"PROJ"}
//   - MainlineCandidates:  {"master", "main"}
//   - FirstDevelopmentTag: "v0.1.0"
//   - FirstReleaseTag:     "v1.0.0"
//   - Remote:              "origin"
func DefaultOptions() Options {
	return Options{
		Projects:            []string{"PROJ"},
		MainlineCandidates:  []string{"master", "main"},
		FirstDevelopmentTag: "v0.1.0",
		FirstReleaseTag:     "v1.0.0",
		Remote:              "origin",
	}
}

// normalized returns a copy with implicit defaults applied and project
// codes canonicalized.
func (o Options) normalized() Options {
	out := o
	def := DefaultOptions()

	codes := make([]string, 0, len(out.Projects))
	for _, p := range out.Projects {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			codes = append(codes, p)
		}
	}
	out.Projects = codes

	if len(out.MainlineCandidates) == 0 {
		out.MainlineCandidates = def.MainlineCandidates
	}
	if out.FirstDevelopmentTag == "" {
		out.FirstDevelopmentTag = def.FirstDevelopmentTag
	}
	if out.FirstReleaseTag == "" {
		out.FirstReleaseTag = def.FirstReleaseTag
	}
	if out.Remote == "" {
		out.Remote = def.Remote
	}

	return out
}

// IsMainline reports whether branch is one of the main-line candidates.
func (o Options) IsMainline(branch string) bool {
	for _, cand := range o.normalized().MainlineCandidates {
		if branch == cand {
			return true
		}
	}

	return false
}
