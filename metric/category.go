package metric

import (
	"context"
	"fmt"
	"sort"

	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
)

// Category is a named, immutable list of related metrics, sorted by name.
type Category struct {
	name    string
	table   string
	metrics []Metric
}

// NewCategory returns the category of metrics. table names the category in
// reports and must be a valid identifier, as must every metric column.
func NewCategory(name, table string, metrics ...Metric) (*Category, error) {
	if !ValidID(table) {
		return nil, fmt.Errorf("category %q: invalid table name %q", name, table)
	}

	seen := map[string]bool{}
	for _, m := range metrics {
		if !ValidID(m.Column()) {
			return nil, fmt.Errorf("category %q: metric %q: invalid column %q", name, m.Name(), m.Column())
		}
		if seen[m.Column()] {
			return nil, fmt.Errorf("category %q: duplicate column %q", name, m.Column())
		}
		seen[m.Column()] = true
	}

	sorted := make([]Metric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})

	return &Category{name: name, table: table, metrics: sorted}, nil
}

// MustCategory is like NewCategory but panics on error. It is meant for
// categories built from fixed metric lists.
func MustCategory(name, table string, metrics ...Metric) *Category {
	c, err := NewCategory(name, table, metrics...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) TableName() string {
	return c.table
}

// Metrics returns the metrics sorted by name.
func (c *Category) Metrics() []Metric {
	metrics := make([]Metric, len(c.metrics))
	copy(metrics, c.metrics)
	return metrics
}

// Metric returns the metric with column or name key.
func (c *Category) Metric(key string) (Metric, bool) {
	for _, m := range c.metrics {
		if m.Column() == key || m.Name() == key {
			return m, true
		}
	}
	return nil, false
}

func (c *Category) String() string {
	names := make([]string, len(c.metrics))
	for i, m := range c.metrics {
		names[i] = m.Name()
	}
	return fmt.Sprintf("<Category: %s: %q>", c.name, names)
}

// ValuesForText computes every metric of the category over t. A failing
// metric is recorded in its Value and does not stop the others.
func (c *Category) ValuesForText(ctx context.Context, t *sent.Text, rp *pool.Pool) Values {
	values := make(Values, len(c.metrics))
	for i, m := range c.metrics {
		v, err := Compute(ctx, m, t, rp)
		values[i] = Value{
			Table:  c.table,
			Name:   m.Name(),
			Column: m.Column(),
			Value:  v,
			Err:    err,
		}
	}
	return values
}
