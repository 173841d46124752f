package tagmint

import "regexp"

var (
	// Semantic release tags: exactly vMAJOR.MINOR.PATCH, digits only.
	semanticRe = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

	// Pre-release tags: semantic core plus one lowercase label.
	preReleaseRe = regexp.MustCompile(`^v\d+\.\d+\.\d+-[a-z]+$`)

	// Temporary tags: semantic base, branch segment, numeric suffix.
	// The segment match is greedy, so the suffix is always the digits
	// after the last dot in the string.
	temporaryRe = regexp.MustCompile(`^(v\d+\.\d+\.\d+)_(.+)\.(\d+)$`)

	// Cleanup candidates, wider than temporaryRe on purpose so that
	// malformed and legacy temporary tags are pruned too.
	cleanupInfixRe  = regexp.MustCompile(`_.+\.`)
	cleanupTicketRe = regexp.MustCompile(`_[A-Z]+-\d+$`)
)
