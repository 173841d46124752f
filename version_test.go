package tagmint

import "testing"

// * NextVersions

func TestNextVersions(t *testing.T) {
	t.Parallel()
	cls := NewClassifier(DefaultOptions())

	cases := []struct {
		latest              string
		patch, minor, major string
	}{
		{"v1.1.0", "v1.1.1", "v1.2.0", "v2.0.0"},
		{"v0.0.0", "v0.0.1", "v0.1.0", "v1.0.0"},
		{"v9.9.9", "v9.9.10", "v9.10.0", "v10.0.0"},
		{"v2.0.0", "v2.0.1", "v2.1.0", "v3.0.0"},
	}
	for _, c := range cases {
		got := NextVersions(cls.Inspect(c.latest))
		if got.Patch != c.patch || got.Minor != c.minor || got.Major != c.major {
			t.Fatalf("NextVersions(%q)=%+v, want {%s %s %s}", c.latest, got, c.patch, c.minor, c.major)
		}
	}
}

func TestNextVersionsStayClassifiable(t *testing.T) {
	t.Parallel()
	cls := NewClassifier(DefaultOptions())

	next := NextVersions(cls.Inspect("v3.14.159"))
	for _, tag := range []string{next.Patch, next.Minor, next.Major} {
		if got := cls.Classify(tag); got != KindSemantic {
			t.Fatalf("candidate %q classified as %v, want semantic", tag, got)
		}
	}
}

// * LatestSemantic

func TestLatestSemantic(t *testing.T) {
	t.Parallel()
	cls := NewClassifier(DefaultOptions())

	cases := []struct {
		name string
		tags []string
		want string
		ok   bool
	}{
		{"simple", []string{"v1.0.0", "v1.1.0"}, "v1.1.0", true},
		{"numeric not lexicographic", []string{"v1.9.0", "v1.10.0"}, "v1.10.0", true},
		{"major dominates", []string{"v2.0.0", "v1.99.99"}, "v2.0.0", true},
		{
			"non-semantic noise ignored",
			[]string{"v1.0.0_feature-x.1", "PROJ-1.2", "v1.2.0-beta", "v1.1.0", "junk"},
			"v1.1.0", true,
		},
		{"none", []string{"PROJ-1.2", "junk"}, "", false},
		{"empty", nil, "", false},
		// Equal triples (leading zeros) resolve to the lexically later raw.
		{"leading zero alias", []string{"v1.02.0", "v1.2.0"}, "v1.2.0", true},
	}
	for _, c := range cases {
		got, ok := LatestSemantic(cls, c.tags)
		if ok != c.ok {
			t.Fatalf("%s: ok=%v, want %v", c.name, ok, c.ok)
		}
		if ok && got.Raw != c.want {
			t.Fatalf("%s: latest=%q, want %q", c.name, got.Raw, c.want)
		}
	}
}

func TestFormatSemantic(t *testing.T) {
	t.Parallel()

	if got := FormatSemantic(1, 22, 333); got != "v1.22.333" {
		t.Fatalf("FormatSemantic got %q", got)
	}
}
