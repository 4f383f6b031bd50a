package markdown

import "strings"

// Block is a region of a note body owned by the application. Anything the
// user writes outside the markers survives a rewrite.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block's current content for generated, appending the
// block when the body does not contain it yet.
func (b Block) Replace(body, generated string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	block := b.Start + "\n" + generated + "\n" + b.End

	if start >= 0 && end > start {
		end += len(b.End)
		return body[:start] + block + body[end:]
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Strip removes the block and its markers, returning the user-owned text.
func (b Block) Strip(body string) string {
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start < 0 || end <= start {
		return body
	}
	return strings.TrimRight(body[:start], "\n") + body[end+len(b.End):]
}
