package markdown_test

import (
	"strings"
	"testing"

	"faithtrack/internal/platform/markdown"
)

type noteMeta struct {
	ID     string   `yaml:"id"`
	Target float64  `yaml:"target"`
	Tags   []string `yaml:"tags,omitempty"`
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.Encode(noteMeta{ID: "r-1", Target: 1000}, "## Notes\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nid: r-1\n") {
		t.Fatalf("unexpected frontmatter: %q", rendered)
	}

	var meta noteMeta
	body, err := markdown.Decode(rendered, &meta)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.ID != "r-1" || meta.Target != 1000 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if !strings.Contains(body, "## Notes") {
		t.Fatalf("body lost: %q", body)
	}
}

func TestDecodeWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	body, err := markdown.Decode("plain note\n", &meta)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body != "plain note\n" || meta.ID != "" {
		t.Fatalf("unexpected decode result: %q %+v", body, meta)
	}
}

func TestDecodeMissingClosingSeparator(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	if _, err := markdown.Decode("---\nid: x\n", &meta); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestBlockReplaceAndStrip(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Start: "<!-- s -->", End: "<!-- e -->"}

	body := block.Replace("my own words\n", "generated v1")
	if !strings.Contains(body, "my own words") || !strings.Contains(body, "generated v1") {
		t.Fatalf("unexpected body: %q", body)
	}

	body = block.Replace(body, "generated v2")
	if strings.Contains(body, "generated v1") {
		t.Fatalf("old block content should be replaced: %q", body)
	}
	if strings.Count(body, "<!-- s -->") != 1 {
		t.Fatalf("block duplicated: %q", body)
	}

	stripped := block.Strip(body)
	if strings.Contains(stripped, "generated") || !strings.Contains(stripped, "my own words") {
		t.Fatalf("unexpected stripped body: %q", stripped)
	}
}

func TestBlockReplaceEmptyBody(t *testing.T) {
	t.Parallel()
	block := markdown.Block{Start: "<!-- s -->", End: "<!-- e -->"}
	if got := block.Replace("  \n", "x"); got != "<!-- s -->\nx\n<!-- e -->\n" {
		t.Fatalf("unexpected block: %q", got)
	}
}
