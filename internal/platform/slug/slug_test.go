package slug_test

import (
	"strings"
	"testing"

	"faithtrack/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Save 100,000 KES":     "save-100-000-kes",
		"  Read the Bible!  ":  "read-the-bible",
		"":                     "untitled",
		"###":                  "untitled",
		"Ünïcode only ✨ title": "n-code-only-title",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeCapsLength(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("abc ", 40))
	if len(got) > 48 {
		t.Fatalf("slug too long: %d", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug must not end with dash: %q", got)
	}
}

func TestWithSuffix(t *testing.T) {
	t.Parallel()
	if got := slug.WithSuffix("Read the Bible", "3F2a91c0"); got != "read-the-bible-3f2a91c0" {
		t.Fatalf("unexpected slug %q", got)
	}
	if got := slug.WithSuffix("Read", ""); got != "read" {
		t.Fatalf("empty suffix should be dropped, got %q", got)
	}
}
