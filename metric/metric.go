// Package metric defines metrics, the scalar features extracted from a
// text, and categories grouping related metrics.
package metric

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/stat"
)

// ErrEmptyInput is returned by metrics undefined for the text, e.g. the
// largest noun phrase of a text without noun phrases.
var ErrEmptyInput = stat.ErrEmpty

var validID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidID reports whether s can name a table or a column.
func ValidID(s string) bool {
	return validID.MatchString(s)
}

// Metric is a textual characteristic. Implementations hold no state: the
// value depends only on the text and the resources of the pool.
type Metric interface {
	// Name is the display name, e.g. "Noun Phrase Incidence".
	Name() string

	// Column is the short key, e.g. "np_incidence".
	Column() string

	ValueForText(ctx context.Context, t *sent.Text, rp *pool.Pool) (float64, error)
}

// Error is the failure of a metric on a text.
type Error struct {
	Metric string
	Column string
	TextID uuid.UUID
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("metric %q on text %s: %v", e.Metric, e.TextID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Compute computes m for t, returning failures as *Error.
func Compute(ctx context.Context, m Metric, t *sent.Text, rp *pool.Pool) (float64, error) {
	v, err := m.ValueForText(ctx, t, rp)
	if err != nil {
		return 0, &Error{Metric: m.Name(), Column: m.Column(), TextID: t.ID, Err: err}
	}
	return v, nil
}
