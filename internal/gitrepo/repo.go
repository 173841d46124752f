// Package gitrepo exposes the narrow repository command/query surface the
// tag policy needs, backed by go-git. It never decides anything itself;
// all policy lives in the root package.
package gitrepo

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo wraps one opened git repository.
type Repo struct {
	repo *gitlib.Repository
	path string
}

// Open opens the repository containing path, walking up to find .git the
// way the git binary does.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repo{repo: repo, path: abs}, nil
}

// New wraps an already opened repository. Used by tests with in-memory
// storage.
func New(repo *gitlib.Repository) *Repo {
	return &Repo{repo: repo}
}

// Path returns the filesystem path the repository was opened from.
func (r *Repo) Path() string {
	return r.path
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repo) CurrentBranch() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", ref.Hash().String()[:7])
	}

	return ref.Name().Short(), nil
}

// BranchExists reports whether a local branch with this name exists.
func (r *Repo) BranchExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolve branch %q: %w", name, err)
	}

	return true, nil
}

// LocalBranches returns the sorted short names of all local branches.
func (r *Repo) LocalBranches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if name := ref.Name().Short(); name != "" {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	sort.Strings(names)

	return names, nil
}

// LocalTags returns the sorted short names of all local tags.
func (r *Repo) LocalTags() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if name := ref.Name().Short(); name != "" {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	sort.Strings(names)

	return names, nil
}

// RemoteTags lists the tag names advertised by the named remote.
// Dereferenced entries for annotated tags ("name^{}") are filtered out.
func (r *Repo) RemoteTags(remote string) ([]string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return nil, fmt.Errorf("remote %q: %w", remote, err)
	}
	refs, err := rem.List(&gitlib.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list refs on %q: %w", remote, err)
	}

	var names []string
	for _, ref := range refs {
		name := ref.Name()
		if !name.IsTag() {
			continue
		}
		short := name.Short()
		if short == "" || strings.HasSuffix(short, "^{}") {
			continue
		}
		names = append(names, short)
	}
	sort.Strings(names)

	return names, nil
}

// MergeBase returns the common-ancestor commit of two local branches.
// found=false means the branches share no history.
func (r *Repo) MergeBase(branch, other string) (string, bool, error) {
	a, err := r.branchCommit(branch)
	if err != nil {
		return "", false, err
	}
	b, err := r.branchCommit(other)
	if err != nil {
		return "", false, err
	}

	bases, err := a.MergeBase(b)
	if err != nil {
		return "", false, fmt.Errorf("merge-base %s %s: %w", branch, other, err)
	}
	if len(bases) == 0 {
		return "", false, nil
	}

	return bases[0].Hash.String(), true, nil
}

// branchCommit resolves a local branch name to the commit it points at.
func (r *Repo) branchCommit(name string) (*object.Commit, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return nil, fmt.Errorf("resolve branch %q: %w", name, err)
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolve branch %q commit: %w", name, err)
	}

	return commit, nil
}

// TagsMergedInto lists the tags whose commit is reachable from (merged
// into) the given commit. Annotated tags are peeled to their commit;
// tags pointing at non-commit objects are skipped.
func (r *Repo) TagsMergedInto(hash string) ([]string, error) {
	target, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("resolve commit %s: %w", hash, err)
	}

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, ok := r.peelToCommit(ref.Hash())
		if !ok {
			return nil
		}
		reachable, err := commit.IsAncestor(target)
		if err != nil {
			slog.Debug("ancestry check failed", "tag", ref.Name().Short(), "err", err)
			return nil
		}
		if reachable {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tags: %w", err)
	}
	sort.Strings(names)

	return names, nil
}

// peelToCommit resolves a tag ref hash to the commit it ultimately points
// at. Lightweight tags point directly at a commit; annotated tags point
// at a tag object, possibly nested.
func (r *Repo) peelToCommit(hash plumbing.Hash) (*object.Commit, bool) {
	if commit, err := r.repo.CommitObject(hash); err == nil {
		return commit, true
	}

	cur := hash
	for i := 0; i < 8; i++ {
		tag, err := r.repo.TagObject(cur)
		if err != nil {
			return nil, false
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			commit, err := r.repo.CommitObject(tag.Target)
			return commit, err == nil
		case plumbing.TagObject:
			cur = tag.Target
		default:
			return nil, false
		}
	}

	return nil, false
}

// ResolveCommit resolves a commit-ish revision to a full commit hash.
func (r *Repo) ResolveCommit(rev string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", rev, err)
	}
	if _, err := r.repo.CommitObject(*hash); err != nil {
		return "", fmt.Errorf("%q is not a commit: %w", rev, err)
	}

	return hash.String(), nil
}

// CreateTag creates an annotated local tag at rev. Fails if the name
// already exists.
func (r *Repo) CreateTag(name, rev, message string) error {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return fmt.Errorf("resolve %q: %w", rev, err)
	}

	_, err = r.repo.CreateTag(name, *hash, &gitlib.CreateTagOptions{Message: message})
	if err != nil {
		return fmt.Errorf("create tag %q: %w", name, err)
	}
	slog.Debug("tag created", "tag", name, "commit", hash.String())

	return nil
}

// DeleteTag deletes a local tag. Absence is not an error: cleanup runs
// must stay idempotent.
func (r *Repo) DeleteTag(name string) error {
	err := r.repo.DeleteTag(name)
	if errors.Is(err, gitlib.ErrTagNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete tag %q: %w", name, err)
	}

	return nil
}

// PushTag pushes a single tag ref to the named remote.
func (r *Repo) PushTag(name, remote string) error {
	spec := gitcfg.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", name, name))

	return r.push(remote, spec, "push tag "+name)
}

// PushBranch pushes a single branch ref to the named remote.
func (r *Repo) PushBranch(name, remote string) error {
	spec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name))

	return r.push(remote, spec, "push branch "+name)
}

// DeleteRemoteTag deletes a tag on the named remote by pushing an empty
// source refspec.
func (r *Repo) DeleteRemoteTag(name, remote string) error {
	spec := gitcfg.RefSpec(":refs/tags/" + name)

	return r.push(remote, spec, "delete remote tag "+name)
}

func (r *Repo) push(remote string, spec gitcfg.RefSpec, op string) error {
	err := r.repo.Push(&gitlib.PushOptions{
		RemoteName: remote,
		RefSpecs:   []gitcfg.RefSpec{spec},
	})
	if errors.Is(err, gitlib.NoErrAlreadyUpToDate) {
		slog.Debug("already up to date", "op", op, "remote", remote)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s to %q: %w", op, remote, err)
	}

	return nil
}
