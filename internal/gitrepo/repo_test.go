package gitrepo

import (
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// initRepo builds an in-memory repository with a configured author so
// annotated tags and commits work without a global gitconfig.
func initRepo(t *testing.T) (*Repo, *gitlib.Repository) {
	t.Helper()

	repo, err := gitlib.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.User.Name = "tester"
	cfg.User.Email = "tester@example.com"
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("set config: %v", err)
	}

	return New(repo), repo
}

func commitFile(t *testing.T, repo *gitlib.Repository, name, content string) string {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := util.WriteFile(wt.Filesystem, name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	hash, err := wt.Commit("update "+name, &gitlib.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	return hash.String()
}

func checkout(t *testing.T, repo *gitlib.Repository, branch string, create bool) {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	err = wt.Checkout(&gitlib.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		t.Fatalf("checkout %s: %v", branch, err)
	}
}

func TestBranchQueries(t *testing.T) {
	r, repo := initRepo(t)
	commitFile(t, repo, "a.txt", "one")
	checkout(t, repo, "feature-x", true)

	branch, err := r.CurrentBranch()
	if err != nil || branch != "feature-x" {
		t.Fatalf("CurrentBranch=%q err=%v", branch, err)
	}

	branches, err := r.LocalBranches()
	if err != nil {
		t.Fatalf("LocalBranches: %v", err)
	}
	if len(branches) != 2 || branches[0] != "feature-x" || branches[1] != "master" {
		t.Fatalf("LocalBranches=%v, want sorted [feature-x master]", branches)
	}

	for name, want := range map[string]bool{"master": true, "feature-x": true, "gone": false} {
		ok, err := r.BranchExists(name)
		if err != nil || ok != want {
			t.Fatalf("BranchExists(%q)=%v err=%v, want %v", name, ok, err, want)
		}
	}
}

func TestCreateTagAndConflict(t *testing.T) {
	r, repo := initRepo(t)
	hash := commitFile(t, repo, "a.txt", "one")

	if err := r.CreateTag("v1.0.0", hash, "v1.0.0"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	tags, err := r.LocalTags()
	if err != nil || len(tags) != 1 || tags[0] != "v1.0.0" {
		t.Fatalf("LocalTags=%v err=%v", tags, err)
	}

	if err := r.CreateTag("v1.0.0", hash, "again"); err == nil {
		t.Fatal("re-creating an existing tag must fail")
	}
	if err := r.CreateTag("v1.1.0", "no-such-rev", "v1.1.0"); err == nil {
		t.Fatal("unresolvable target must fail")
	}
}

func TestDeleteTagIdempotent(t *testing.T) {
	r, repo := initRepo(t)
	hash := commitFile(t, repo, "a.txt", "one")
	if err := r.CreateTag("v1.0.0_feature-x.1", hash, "tmp"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if err := r.DeleteTag("v1.0.0_feature-x.1"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	tags, _ := r.LocalTags()
	if len(tags) != 0 {
		t.Fatalf("tag survived deletion: %v", tags)
	}

	// Second delete of the same name reports success.
	if err := r.DeleteTag("v1.0.0_feature-x.1"); err != nil {
		t.Fatalf("repeated DeleteTag: %v", err)
	}
}

func TestResolveCommit(t *testing.T) {
	r, repo := initRepo(t)
	first := commitFile(t, repo, "a.txt", "one")
	second := commitFile(t, repo, "a.txt", "two")

	got, err := r.ResolveCommit("HEAD")
	if err != nil || got != second {
		t.Fatalf("ResolveCommit(HEAD)=%q err=%v, want %q", got, err, second)
	}
	got, err = r.ResolveCommit(first)
	if err != nil || got != first {
		t.Fatalf("ResolveCommit(full hash)=%q err=%v", got, err)
	}
	if _, err := r.ResolveCommit("does-not-exist"); err == nil {
		t.Fatal("unknown revision must fail")
	}
}

func TestMergeBaseAndTagsMergedInto(t *testing.T) {
	r, repo := initRepo(t)

	fork := commitFile(t, repo, "a.txt", "one")
	if err := r.CreateTag("v1.0.0", fork, "v1.0.0"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	checkout(t, repo, "feature-x", true)
	commitFile(t, repo, "feat.txt", "wip")

	checkout(t, repo, "master", false)
	tip := commitFile(t, repo, "a.txt", "two")
	if err := r.CreateTag("v1.1.0", tip, "v1.1.0"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	hash, found, err := r.MergeBase("feature-x", "master")
	if err != nil || !found {
		t.Fatalf("MergeBase found=%v err=%v", found, err)
	}
	if hash != fork {
		t.Fatalf("MergeBase=%s, want fork point %s", hash, fork)
	}

	// Only v1.0.0 is reachable from the fork point; both tags are
	// reachable from the mainline tip. Annotated tags peel transparently.
	atFork, err := r.TagsMergedInto(fork)
	if err != nil || len(atFork) != 1 || atFork[0] != "v1.0.0" {
		t.Fatalf("TagsMergedInto(fork)=%v err=%v", atFork, err)
	}
	atTip, err := r.TagsMergedInto(tip)
	if err != nil || len(atTip) != 2 {
		t.Fatalf("TagsMergedInto(tip)=%v err=%v, want both tags", atTip, err)
	}

	if _, _, err := r.MergeBase("feature-x", "gone"); err == nil {
		t.Fatal("missing branch must fail")
	}
}

func TestRemoteTagsMissingRemote(t *testing.T) {
	r, repo := initRepo(t)
	commitFile(t, repo, "a.txt", "one")

	_, err := r.RemoteTags("origin")
	if err == nil || !strings.Contains(err.Error(), "origin") {
		t.Fatalf("err=%v, want a remote lookup failure naming origin", err)
	}
}

func TestCurrentBranchDetached(t *testing.T) {
	r, repo := initRepo(t)
	hash := commitFile(t, repo, "a.txt", "one")

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := wt.Checkout(&gitlib.CheckoutOptions{Hash: plumbing.NewHash(hash)}); err != nil {
		t.Fatalf("detach: %v", err)
	}

	if _, err := r.CurrentBranch(); err == nil {
		t.Fatal("detached HEAD must be reported as an error")
	}
}
