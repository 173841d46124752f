package tagmint

import "testing"

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opt := DefaultOptions()
	if opt.Remote != "origin" {
		t.Fatalf("Remote=%q", opt.Remote)
	}
	if opt.FirstDevelopmentTag != "v0.1.0" || opt.FirstReleaseTag != "v1.0.0" {
		t.Fatalf("first tags = %q / %q", opt.FirstDevelopmentTag, opt.FirstReleaseTag)
	}
	if len(opt.MainlineCandidates) != 2 || opt.MainlineCandidates[0] != "master" {
		t.Fatalf("mainline candidates = %v, master must be preferred", opt.MainlineCandidates)
	}
}

func TestNormalized(t *testing.T) {
	t.Parallel()

	got := Options{Projects: []string{" ops ", "", "core"}}.normalized()
	if len(got.Projects) != 2 || got.Projects[0] != "OPS" || got.Projects[1] != "CORE" {
		t.Fatalf("projects = %v", got.Projects)
	}
	if got.Remote != "origin" || got.FirstReleaseTag != "v1.0.0" {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestIsMainline(t *testing.T) {
	t.Parallel()

	opt := DefaultOptions()
	cases := []struct {
		branch string
		want   bool
	}{
		{"main", true},
		{"master", true},
		{"feature-x", false},
		{"main-v2", false},
	}
	for _, c := range cases {
		if got := opt.IsMainline(c.branch); got != c.want {
			t.Fatalf("IsMainline(%q)=%v, want %v", c.branch, got, c.want)
		}
	}

	custom := Options{MainlineCandidates: []string{"trunk"}}
	if !custom.IsMainline("trunk") || custom.IsMainline("main") {
		t.Fatal("custom mainline candidates not honored")
	}
}
