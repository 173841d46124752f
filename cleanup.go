package tagmint

import "strings"

// Decision is the planned fate of one cleanup candidate. Decisions carry
// no side effects; execution is delegated to the repository collaborator.
type Decision struct {
	Tag    string
	Keep   bool
	Reason string
}

// IsCleanupCandidate reports whether tag matches the loose cleanup
// grammar: anything containing "_<something>." or ending in
// "_<UPPERCASE>-<number>". This is a superset of the strict temporary
// grammar so that malformed and legacy temporary tags are caught too.
func IsCleanupCandidate(tag string) bool {
	return cleanupInfixRe.MatchString(tag) || cleanupTicketRe.MatchString(tag)
}

// PlanCleanup computes a keep/delete decision for every cleanup candidate
// in tags. A candidate is kept when its branch segment is non-empty and
// appears in one of the active branch names; everything else is deleted.
// The planner is pure and idempotent: the same inputs always produce the
// same decisions, in input order. Callers run it separately over the
// local and remote inventories, always with the local branch list as the
// liveness oracle.
func PlanCleanup(tags, activeBranches []string) []Decision {
	out := make([]Decision, 0, len(tags))
	for _, tag := range tags {
		if !IsCleanupCandidate(tag) {
			continue
		}

		seg := branchSegment(tag)
		switch {
		case seg == "":
			out = append(out, Decision{Tag: tag, Keep: false, Reason: "no branch segment"})

		case segmentActive(seg, activeBranches):
			out = append(out, Decision{Tag: tag, Keep: true, Reason: "branch " + seg + " still active"})

		default:
			out = append(out, Decision{Tag: tag, Keep: false, Reason: "branch " + seg + " no longer exists"})
		}
	}

	return out
}

// branchSegment extracts the text between the first '_' and the next '.'
// (or end of string). Branch names that themselves contain '.' or '_' can
// mis-extract here; the rule is kept as-is to preserve behavior on
// existing tag inventories.
func branchSegment(tag string) string {
	i := strings.IndexByte(tag, '_')
	if i < 0 {
		return ""
	}

	rest := tag[i+1:]
	if j := strings.IndexByte(rest, '.'); j >= 0 {
		rest = rest[:j]
	}

	return rest
}

// segmentActive reports whether seg appears as a substring of any active
// branch name.
func segmentActive(seg string, branches []string) bool {
	for _, b := range branches {
		if strings.Contains(b, seg) {
			return true
		}
	}

	return false
}
