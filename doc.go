/*
Package tagmint decides which git tag names to propose, validate, or prune.

The package is repository-agnostic: it operates on tag and branch name
strings and never mutates anything. Typical flow:

 1. Fetch tag and branch names elsewhere (e.g., via internal/gitrepo).
 2. Classify tags, compute next-version or temporary-tag candidates,
    and plan temporary-tag cleanup with the types in this package.
 3. Execute the resulting decisions through a repository collaborator.

Accepted tag grammars, in classification priority order:

  - Semantic:    vMAJOR.MINOR.PATCH          (v1.2.3)
  - Ticket:      PROJECT-<n>.<n>             (OPS-12.4, codes from Options)
  - Pre-release: vMAJOR.MINOR.PATCH-label    (v1.2.3-beta)
  - Temporary:   vMAJOR.MINOR.PATCH_branch.N (v1.2.3_feature-x.1)

Temporary tags scope a feature-branch build to the semantic tag the branch
diverged from plus an incrementing suffix. The cleanup planner deletes
temporary tags whose branch no longer exists; its candidate grammar is
deliberately looser than the temporary grammar so stale malformed tags are
pruned as well.

Usage example:

	cls := tagmint.NewClassifier(tagmint.DefaultOptions())

	latest, ok := tagmint.LatestSemantic(cls, localTags) // ok when any semantic tag exists
	if ok {
		next := tagmint.NextVersions(latest)
		fmt.Println(next.Patch, next.Minor, next.Major) // v1.1.1 v1.2.0 v2.0.0
	}

	inv := tagmint.NewInventory(localTags)
	n := inv.NextSuffix("v1.1.0", "feature-x")
	fmt.Println(tagmint.TemporaryTag("v1.1.0", "feature-x", n)) // v1.1.0_feature-x.1

	for _, d := range tagmint.PlanCleanup(localTags, branchNames) {
		fmt.Println(d.Tag, d.Keep, d.Reason)
	}
*/
package tagmint
