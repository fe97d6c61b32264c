// Package vexyovernight keeps the legacy data summarisation helpers around
// for callers of the original library API. New code lives under internal/.
package vexyovernight

import (
	"fmt"
	"sort"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
)

// Config carries caller metadata surfaced in a Summary.
type Config struct {
	Name    string
	Value   any
	Options map[string]any
}

// Summary describes a processed collection.
type Summary struct {
	Count       int
	UniqueCount int
	Types       []string
	ConfigName  string
	FirstItem   string
	Options     map[string]any
}

// ProcessData summarises items: size, distinct values, type distribution and
// configuration metadata. The input must be non-empty; config may be nil.
func ProcessData(items []any, config *Config) (Summary, error) {
	if items == nil {
		return Summary{}, voerrors.NewValidationError("input data must be a sequence of records")
	}
	if len(items) == 0 {
		return Summary{}, voerrors.NewValidationError("input data cannot be empty")
	}

	unique := make(map[string]struct{}, len(items))
	typeSet := make(map[string]struct{})
	for _, item := range items {
		unique[fmt.Sprintf("%#v", item)] = struct{}{}
		typeSet[fmt.Sprintf("%T", item)] = struct{}{}
	}
	types := make([]string, 0, len(typeSet))
	for name := range typeSet {
		types = append(types, name)
	}
	sort.Strings(types)

	summary := Summary{
		Count:       len(items),
		UniqueCount: len(unique),
		Types:       types,
		FirstItem:   fmt.Sprintf("%#v", items[0]),
		Options:     map[string]any{},
	}
	if config != nil {
		summary.ConfigName = config.Name
		for key, value := range config.Options {
			summary.Options[key] = value
		}
	}
	return summary, nil
}
