// Package session drives the tag-creation decision tree: menus on top,
// policy from the root package in the middle, repository commands at the
// bottom. Everything is synchronous and fail-fast; an unrecognized menu
// choice terminates the run instead of re-prompting.
package session

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tagmint/tagmint"
)

// Proposal is an in-progress tag candidate: the desired name plus the
// target commit reference. It is validated once and consumed once.
type Proposal struct {
	Name   string
	Commit string // commit-ish; "HEAD" when unspecified
}

// Session orchestrates one invocation.
type Session struct {
	repo Collaborator
	opt  tagmint.Options
	cls  tagmint.Classifier
	res  tagmint.Resolver

	in     *bufio.Reader
	out    io.Writer
	styles Styles

	// NoPush creates the tag locally without pushing anything.
	NoPush bool
	// NoCleanup skips the temporary-tag prune pass.
	NoCleanup bool
}

// New builds a session over the given collaborator and policy.
func New(repo Collaborator, opt tagmint.Options, in io.Reader, out io.Writer) *Session {
	return &Session{
		repo:   repo,
		opt:    opt,
		cls:    tagmint.NewClassifier(opt),
		res:    tagmint.NewResolver(opt),
		in:     bufio.NewReader(in),
		out:    out,
		styles: DefaultStyles(),
	}
}

// Run executes the full flow: resolve context, propose (interactively
// when tagArg is empty), validate, check existence, create and push,
// clean up, report. A returned nil with no tag created means the user
// cancelled.
func (s *Session) Run(tagArg, commitArg string) error {
	branch, err := s.repo.CurrentBranch()
	if err != nil {
		return &tagmint.ExternalError{Op: "read branch context", Err: err}
	}
	branches, err := s.repo.LocalBranches()
	if err != nil {
		return &tagmint.ExternalError{Op: "list local branches", Err: err}
	}
	localTags, err := s.repo.LocalTags()
	if err != nil {
		return &tagmint.ExternalError{Op: "list local tags", Err: err}
	}
	mainline := s.opt.IsMainline(branch)

	name := tagArg
	if name == "" {
		name, err = s.choose(branch, mainline, localTags)
		if err != nil {
			return err
		}
		if name == "" {
			fmt.Fprintln(s.out, "cancelled, no tag created")
			return nil
		}

		// The prompt blocks for an arbitrary time; a checkout in another
		// terminal would silently retarget the tag. Re-read and compare.
		now, err := s.repo.CurrentBranch()
		if err != nil {
			return &tagmint.ExternalError{Op: "re-read branch context", Err: err}
		}
		if now != branch {
			return &tagmint.ConcurrentModificationError{Was: branch, Now: now}
		}
	}

	if err := s.validate(name, branch, mainline); err != nil {
		return err
	}

	commit := commitArg
	if commit == "" {
		commit = "HEAD"
	}
	if err := s.create(Proposal{Name: name, Commit: commit}, branch, mainline, localTags); err != nil {
		return err
	}

	if !s.NoCleanup {
		s.cleanup(branches)
	}

	return nil
}

// CleanupOnly runs just the prune pass.
func (s *Session) CleanupOnly() error {
	branches, err := s.repo.LocalBranches()
	if err != nil {
		return &tagmint.ExternalError{Op: "list local branches", Err: err}
	}
	s.cleanup(branches)

	return nil
}

// validate applies the branch-dependent grammar policy.
func (s *Session) validate(name, branch string, mainline bool) error {
	if mainline {
		if s.cls.Classify(name) == tagmint.KindUnrecognized {
			return &tagmint.ValidationError{Tag: name, Branch: branch, Detail: "matches no accepted grammar"}
		}
		return nil
	}

	// Non-main branches take the temporary grammar only; the other
	// grammars are not consulted.
	if !tagmint.IsTemporary(name) {
		return &tagmint.ValidationError{
			Tag:    name,
			Branch: branch,
			Detail: "feature branches accept only temporary tags (vX.Y.Z_branch.N)",
		}
	}

	return nil
}

// create consumes a proposal: existence check in both inventories, target
// resolution, tag creation, pushes. A failed push is a warning, not a
// rollback; the local tag stays.
func (s *Session) create(p Proposal, branch string, mainline bool, localTags []string) error {
	if tagmint.NewInventory(localTags).Has(p.Name) {
		return &tagmint.ConflictError{Tag: p.Name, Where: "local"}
	}
	remoteTags, err := s.repo.RemoteTags(s.opt.Remote)
	if err != nil {
		return &tagmint.ExternalError{Op: "list remote tags", Err: err}
	}
	if tagmint.NewInventory(remoteTags).Has(p.Name) {
		return &tagmint.ConflictError{Tag: p.Name, Where: "remote"}
	}

	hash, err := s.repo.ResolveCommit(p.Commit)
	if err != nil {
		slog.Debug("target did not resolve", "ref", p.Commit, "err", err)
		return &tagmint.NotFoundError{Ref: p.Commit}
	}

	if err := s.repo.CreateTag(p.Name, hash, p.Name); err != nil {
		return &tagmint.ExternalError{Op: "create tag " + p.Name, Err: err}
	}
	fmt.Fprintf(s.out, "created %s at %s\n", s.styles.Tag.Render(p.Name), hash[:7])

	if s.NoPush {
		return nil
	}
	if err := s.repo.PushTag(p.Name, s.opt.Remote); err != nil {
		slog.Warn("push failed; the tag exists locally only", "tag", p.Name, "err", err)
		fmt.Fprintln(s.out, s.styles.Warn.Render("warning: push failed, tag exists locally only"))
		return nil
	}
	fmt.Fprintf(s.out, "pushed %s to %s\n", p.Name, s.opt.Remote)

	// Temporary tags ride along with their branch.
	if !mainline {
		if err := s.repo.PushBranch(branch, s.opt.Remote); err != nil {
			slog.Warn("branch push failed", "branch", branch, "err", err)
			fmt.Fprintln(s.out, s.styles.Warn.Render("warning: branch push failed"))
		}
	}

	return nil
}

// * menus

func (s *Session) choose(branch string, mainline bool, localTags []string) (string, error) {
	if mainline {
		return s.mainMenu(branch, localTags)
	}

	return s.featureMenu(branch, localTags)
}

// mainMenu proposes the computed next versions, or the first-tag defaults
// when no semantic tag exists yet. Returns "" on cancel.
func (s *Session) mainMenu(branch string, localTags []string) (string, error) {
	fmt.Fprintln(s.out, s.styles.Heading.Render("Create a tag on "+branch))

	latest, ok := tagmint.LatestSemantic(s.cls, localTags)
	if !ok {
		s.option("1", "development", s.opt.FirstDevelopmentTag)
		s.option("2", "release", s.opt.FirstReleaseTag)
		s.option("m", "enter a tag name", "")
		s.option("c", "cancel", "")

		switch in := s.readChoice(); in {
		case "1":
			return s.opt.FirstDevelopmentTag, nil
		case "2":
			return s.opt.FirstReleaseTag, nil
		case "m":
			return s.readTagName()
		case "c":
			return "", nil
		default:
			return "", fmt.Errorf("unrecognized choice %q", in)
		}
	}

	fmt.Fprintf(s.out, "latest tag: %s\n", s.styles.Tag.Render(latest.Raw))
	next := tagmint.NextVersions(latest)
	s.option("1", "patch", next.Patch)
	s.option("2", "minor", next.Minor)
	s.option("3", "major", next.Major)
	s.option("m", "enter a tag name", "")
	s.option("c", "cancel", "")

	switch in := s.readChoice(); in {
	case "1":
		return next.Patch, nil
	case "2":
		return next.Minor, nil
	case "3":
		return next.Major, nil
	case "m":
		return s.readTagName()
	case "c":
		return "", nil
	default:
		return "", fmt.Errorf("unrecognized choice %q", in)
	}
}

// featureMenu composes the single temporary-tag proposal for a feature
// branch: resolved base tag plus the next free suffix.
func (s *Session) featureMenu(branch string, localTags []string) (string, error) {
	base, ok, err := s.res.ResolveBase(s.repo, branch, localTags)
	if err != nil {
		return "", &tagmint.ExternalError{Op: "resolve base tag", Err: err}
	}
	baseTag := s.opt.FirstDevelopmentTag
	if ok {
		baseTag = base.Raw
	}

	inv := tagmint.NewInventory(localTags)
	proposal := tagmint.TemporaryTag(baseTag, branch, inv.NextSuffix(baseTag, branch))

	fmt.Fprintln(s.out, s.styles.Heading.Render("Create a temporary tag on "+branch))
	if last, ok := inv.LastTag(baseTag, branch); ok {
		fmt.Fprintf(s.out, "previous: %s\n", last)
	}
	fmt.Fprintf(s.out, "proposed: %s\n", s.styles.Tag.Render(proposal))
	s.option("y", "create it", "")
	s.option("c", "cancel", "")

	switch in := s.readChoice(); in {
	case "y":
		return proposal, nil
	case "c":
		return "", nil
	default:
		return "", fmt.Errorf("unrecognized choice %q", in)
	}
}

func (s *Session) option(key, label, tag string) {
	if tag == "" {
		fmt.Fprintf(s.out, "  %s) %s\n", s.styles.Choice.Render(key), label)
		return
	}
	fmt.Fprintf(s.out, "  %s) %-7s %s\n", s.styles.Choice.Render(key), label, s.styles.Tag.Render(tag))
}

func (s *Session) readChoice() string {
	fmt.Fprint(s.out, "choice: ")
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	return strings.TrimSpace(line)
}

func (s *Session) readTagName() (string, error) {
	fmt.Fprint(s.out, "tag name: ")
	line, err := s.in.ReadString('\n')
	name := strings.TrimSpace(line)
	if name == "" {
		if err != nil {
			return "", fmt.Errorf("read tag name: %w", err)
		}
		return "", fmt.Errorf("empty tag name")
	}

	return name, nil
}

// * cleanup

// cleanup prunes stale temporary tags, first locally and then on the
// remote, always with the local branch list as the liveness oracle.
// Failures are per-tag warnings; the batch continues.
func (s *Session) cleanup(branches []string) {
	localTags, err := s.repo.LocalTags()
	if err != nil {
		slog.Warn("cleanup: list local tags", "err", err)
	} else {
		s.execute(tagmint.PlanCleanup(localTags, branches), "local", s.repo.DeleteTag)
	}

	remoteTags, err := s.repo.RemoteTags(s.opt.Remote)
	if err != nil {
		slog.Warn("cleanup: list remote tags", "remote", s.opt.Remote, "err", err)
		return
	}
	s.execute(tagmint.PlanCleanup(remoteTags, branches), "remote", func(tag string) error {
		return s.repo.DeleteRemoteTag(tag, s.opt.Remote)
	})
}

func (s *Session) execute(plan []tagmint.Decision, where string, del func(string) error) {
	for _, d := range plan {
		if d.Keep {
			slog.Debug("cleanup keep", "where", where, "tag", d.Tag, "reason", d.Reason)
			continue
		}
		if err := del(d.Tag); err != nil {
			slog.Warn("cleanup delete failed", "where", where, "tag", d.Tag, "err", err)
			continue
		}
		fmt.Fprintf(s.out, "pruned %s tag %s (%s)\n", where, d.Tag, d.Reason)
	}
}
