// Package file reads texts from disk.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	sent "github.com/revelaction/cohmetrix/sentence"
)

// Record is the JSON form of a text. Content is required.
type Record struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Source         string `json:"source"`
	Genre          string `json:"genre"`
	Content        string `json:"content"`
	RevisedContent string `json:"revised_content"`
}

// ReadText reads a text from path. Files ending in .json are read as a
// Record, any other file as plain text titled after the file name.
// Options are applied after the file metadata.
func ReadText(path string, opts ...sent.TextOption) (*sent.Text, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var r Record
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		if strings.TrimSpace(r.Content) == "" {
			return nil, fmt.Errorf("%s: empty content", path)
		}
		return r.Text(opts...), nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts = append([]sent.TextOption{sent.WithTitle(name), sent.WithSource(path)}, opts...)
	return sent.NewText(normalize(string(b)), opts...), nil
}

// Text returns the text of the record.
func (r Record) Text(opts ...sent.TextOption) *sent.Text {
	base := []sent.TextOption{
		sent.WithTitle(r.Title),
		sent.WithAuthor(r.Author),
		sent.WithSource(r.Source),
		sent.WithGenre(r.Genre),
	}
	if r.RevisedContent != "" {
		base = append(base, sent.WithRevision(normalize(r.RevisedContent)))
	}
	return sent.NewText(normalize(r.Content), append(base, opts...)...)
}

// normalize composes accents and turns CRLF line ends into LF, so that
// the same transcript always gets the same version.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return norm.NFC.String(s)
}
