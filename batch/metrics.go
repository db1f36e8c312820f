package batch

import (
	"github.com/revelaction/cohmetrix/basiccounts"
	"github.com/revelaction/cohmetrix/constituents"
	"github.com/revelaction/cohmetrix/coref"
	"github.com/revelaction/cohmetrix/logicops"
	"github.com/revelaction/cohmetrix/metric"
	"github.com/revelaction/cohmetrix/semantic"
	"github.com/revelaction/cohmetrix/syntax"
	"github.com/revelaction/cohmetrix/tokens"
	"github.com/revelaction/cohmetrix/tool"
)

// DefaultSet returns every category of metrics that needs no LSA space.
func DefaultSet() *metric.Set {
	return mustSet(defaultCategories()...)
}

// SetFor returns DefaultSet plus the LSA metrics when tools have an LSA
// space.
func SetFor(tools *tool.Registry) *metric.Set {
	categories := defaultCategories()
	if _, err := tools.LSA(); err == nil {
		categories = append(categories, semantic.New())
	}
	return mustSet(categories...)
}

func defaultCategories() []*metric.Category {
	return []*metric.Category{
		basiccounts.New(),
		constituents.New(),
		syntax.New(),
		tokens.New(),
		logicops.New(),
		coref.New(),
	}
}

func mustSet(categories ...*metric.Category) *metric.Set {
	set, err := metric.NewSet(categories...)
	if err != nil {
		panic(err)
	}
	return set
}
