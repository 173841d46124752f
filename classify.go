package tagmint

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/woozymasta/semver"
)

// Kind is the classified form of a tag string.
type Kind uint8

const (
	// KindUnrecognized marks a tag matching none of the accepted grammars.
	KindUnrecognized Kind = iota
	// KindSemantic is vMAJOR.MINOR.PATCH.
	KindSemantic
	// KindTicket is PROJECT-<n>.<n> with a configured project code.
	KindTicket
	// KindPreRelease is vMAJOR.MINOR.PATCH-label.
	KindPreRelease
	// KindTemporary is vMAJOR.MINOR.PATCH_branch.N.
	KindTemporary
)

// String returns a stable textual representation for Kind.
func (k Kind) String() string {
	switch k {
	case KindSemantic:
		return "semantic"
	case KindTicket:
		return "ticket"
	case KindPreRelease:
		return "pre-release"
	case KindTemporary:
		return "temporary"
	default:
		return "unrecognized"
	}
}

// Tag is one classified tag.
type Tag struct {
	Raw  string
	Kind Kind

	// Version carries the parsed triple for semantic and pre-release tags.
	Version semver.Semver

	// Base, Segment, and Suffix carry the decomposed parts of a
	// temporary tag. Base always matches the semantic grammar itself.
	Base    string
	Segment string
	Suffix  int
}

// Classifier matches tag strings against the accepted grammars.
// Construct with NewClassifier; the zero value accepts no ticket codes.
type Classifier struct {
	opt      Options
	ticketRe *regexp.Regexp
}

// NewClassifier builds a classifier for the given policy options.
func NewClassifier(opt Options) Classifier {
	opt = opt.normalized()

	return Classifier{opt: opt, ticketRe: ticketPattern(opt.Projects)}
}

// Classify returns the kind of tag. Grammars are checked in priority
// order; the first match wins.
func (c Classifier) Classify(tag string) Kind {
	return c.Inspect(tag).Kind
}

// Inspect classifies tag and returns the parsed detail.
func (c Classifier) Inspect(tag string) Tag {
	t := Tag{Raw: tag, Kind: KindUnrecognized}

	switch {
	case semanticRe.MatchString(tag):
		t.Kind = KindSemantic
		t.Version = parseTriple(tag)

	case c.ticketRe != nil && c.ticketRe.MatchString(tag):
		t.Kind = KindTicket

	case preReleaseRe.MatchString(tag):
		t.Kind = KindPreRelease
		t.Version, _ = semver.Parse(tag)

	default:
		m := temporaryRe.FindStringSubmatch(tag)
		if m == nil {
			break
		}
		t.Kind = KindTemporary
		t.Base = m[1]
		t.Segment = m[2]
		t.Suffix, _ = strconv.Atoi(m[3])
	}

	return t
}

// IsTemporary reports whether tag matches the strict temporary grammar.
// Non-main branches accept only this grammar for directly supplied tags,
// without consulting the others.
func IsTemporary(tag string) bool {
	return temporaryRe.MatchString(tag)
}

// parseTriple builds a Semver from a tag already matched by semanticRe.
// The strict grammar accepts components the semver parser would reject
// (leading zeros), so the digits are converted directly.
func parseTriple(tag string) semver.Semver {
	m := semanticRe.FindStringSubmatch(tag)
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	return makeSemantic(major, minor, patch)
}

// makeSemantic is a light Semver constructor without parsing.
func makeSemantic(major, minor, patch int) semver.Semver {
	return semver.Semver{
		Major: major,
		Minor: minor,
		Patch: patch,
		Flags: semver.FlagHasMajor | semver.FlagHasMinor | semver.FlagHasPatch,
		Valid: true,
	}
}

// ticketPattern compiles the ticket grammar for the configured codes, or
// returns nil when no codes are configured.
func ticketPattern(projects []string) *regexp.Regexp {
	if len(projects) == 0 {
		return nil
	}

	quoted := make([]string, len(projects))
	for i, p := range projects {
		quoted[i] = regexp.QuoteMeta(p)
	}

	return regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)-\d+\.\d+$`)
}
