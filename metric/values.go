package metric

import (
	"context"
	"errors"
	"fmt"

	"github.com/revelaction/cohmetrix/pool"
	sent "github.com/revelaction/cohmetrix/sentence"
)

// Value is the result of a metric on a text. If Err is not nil, Value is
// meaningless.
type Value struct {
	Table  string
	Name   string
	Column string
	Value  float64
	Err    error
}

// Values are metric results in category and metric order.
type Values []Value

// Get returns the value of the metric with column or name key.
func (vs Values) Get(key string) (Value, bool) {
	for _, v := range vs {
		if v.Column == key || v.Name == key {
			return v, true
		}
	}
	return Value{}, false
}

// Map returns the successful values keyed by metric name, or by column if
// useNames is false.
func (vs Values) Map(useNames bool) map[string]float64 {
	m := make(map[string]float64, len(vs))
	for _, v := range vs {
		if v.Err != nil {
			continue
		}
		if useNames {
			m[v.Name] = v.Value
		} else {
			m[v.Column] = v.Value
		}
	}
	return m
}

// Nested returns the successful values per table, then per column, as
// report writers lay them out.
func (vs Values) Nested() map[string]map[string]float64 {
	m := map[string]map[string]float64{}
	for _, v := range vs {
		if v.Err != nil {
			continue
		}
		if m[v.Table] == nil {
			m[v.Table] = map[string]float64{}
		}
		m[v.Table][v.Column] = v.Value
	}
	return m
}

// Failed returns the values with an error.
func (vs Values) Failed() Values {
	var failed Values
	for _, v := range vs {
		if v.Err != nil {
			failed = append(failed, v)
		}
	}
	return failed
}

// Err joins the errors of the failed values.
func (vs Values) Err() error {
	var errs []error
	for _, v := range vs {
		if v.Err != nil {
			errs = append(errs, v.Err)
		}
	}
	return errors.Join(errs...)
}

// Set is an ordered list of categories.
type Set struct {
	categories []*Category
}

// NewSet fails if two categories share a table name.
func NewSet(categories ...*Category) (*Set, error) {
	seen := map[string]bool{}
	for _, c := range categories {
		if seen[c.TableName()] {
			return nil, fmt.Errorf("duplicate category table %q", c.TableName())
		}
		seen[c.TableName()] = true
	}

	cs := make([]*Category, len(categories))
	copy(cs, categories)
	return &Set{categories: cs}, nil
}

func (s *Set) Categories() []*Category {
	cs := make([]*Category, len(s.categories))
	copy(cs, s.categories)
	return cs
}

// Category returns the category with table name or name key.
func (s *Set) Category(key string) (*Category, bool) {
	for _, c := range s.categories {
		if c.TableName() == key || c.Name() == key {
			return c, true
		}
	}
	return nil, false
}

// Len returns the number of metrics of the set.
func (s *Set) Len() int {
	n := 0
	for _, c := range s.categories {
		n += len(c.metrics)
	}
	return n
}

// ValuesForText computes every metric of every category over t.
func (s *Set) ValuesForText(ctx context.Context, t *sent.Text, rp *pool.Pool) Values {
	var values Values
	for _, c := range s.categories {
		values = append(values, c.ValuesForText(ctx, t, rp)...)
	}
	return values
}
