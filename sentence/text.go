package sentence

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const previewLen = 70

// Text is an input text: its content and metadata.
//
// A Text is immutable once built. The content is expected as one paragraph
// per line, with several sentences per paragraph. Blank lines are ignored.
type Text struct {
	ID uuid.UUID

	Title  string
	Author string
	Source string
	Genre  string

	// Content is the raw content, e.g. a transcript.
	Content string

	// RevisedContent is an optional manually revised version of Content.
	// When present, metrics are computed over it.
	RevisedContent string

	version string
}

// TextOption configures a Text built by NewText.
type TextOption func(*Text)

// WithTitle sets the title of the text.
func WithTitle(title string) TextOption {
	return func(t *Text) { t.Title = title }
}

// WithAuthor sets the author of the text.
func WithAuthor(author string) TextOption {
	return func(t *Text) { t.Author = author }
}

// WithSource sets where the text came from, usually a URL.
func WithSource(source string) TextOption {
	return func(t *Text) { t.Source = source }
}

// WithGenre sets the textual genre.
func WithGenre(genre string) TextOption {
	return func(t *Text) { t.Genre = genre }
}

// WithRevision sets the revised content of the text.
func WithRevision(revised string) TextOption {
	return func(t *Text) { t.RevisedContent = revised }
}

// WithID sets the identity of the text instead of a random one.
func WithID(id uuid.UUID) TextOption {
	return func(t *Text) { t.ID = id }
}

// NewText builds a Text with a fresh identity.
func NewText(content string, opts ...TextOption) *Text {
	t := &Text{
		ID:      uuid.New(),
		Content: content,
	}
	for _, opt := range opts {
		opt(t)
	}

	sum := sha256.Sum256([]byte(t.Body()))
	t.version = hex.EncodeToString(sum[:])
	return t
}

// Body returns the content metrics operate on: the revised content when
// present, the raw content otherwise.
func (t *Text) Body() string {
	if t.RevisedContent != "" {
		return t.RevisedContent
	}
	return t.Content
}

// Paragraphs returns the non blank lines of the body, trimmed.
func (t *Text) Paragraphs() []string {
	var paragraphs []string
	for _, line := range strings.Split(t.Body(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	return paragraphs
}

// Version identifies the body of the text. Two texts with the same body
// share a version.
func (t *Text) Version() string {
	if t.version == "" {
		sum := sha256.Sum256([]byte(t.Body()))
		return hex.EncodeToString(sum[:])
	}
	return t.version
}

// Key identifies the text and its version.
func (t *Text) Key() string {
	return t.ID.String() + ":" + t.Version()
}

func (t *Text) String() string {
	preview := ""
	if p := t.Paragraphs(); len(p) > 0 {
		preview = p[0]
	}

	r := []rune(preview)
	if len(r) >= previewLen {
		preview = string(r[:previewLen]) + "..."
	}
	return fmt.Sprintf("<Text: %q>", preview)
}
