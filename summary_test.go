package vexyovernight

import (
	"testing"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
)

func TestProcessData(t *testing.T) {
	summary, err := ProcessData([]any{1, 2, 2, "a"}, &Config{
		Name:    "default",
		Value:   "demo",
		Options: map[string]any{"label": "sample"},
	})
	if err != nil {
		t.Fatalf("ProcessData() error = %v", err)
	}
	if summary.Count != 4 {
		t.Errorf("Count = %d, want 4", summary.Count)
	}
	if summary.UniqueCount != 3 {
		t.Errorf("UniqueCount = %d, want 3", summary.UniqueCount)
	}
	if len(summary.Types) != 2 || summary.Types[0] != "int" || summary.Types[1] != "string" {
		t.Errorf("Types = %v, want [int string]", summary.Types)
	}
	if summary.ConfigName != "default" {
		t.Errorf("ConfigName = %q, want default", summary.ConfigName)
	}
	if summary.FirstItem != "1" {
		t.Errorf("FirstItem = %q, want 1", summary.FirstItem)
	}
	if summary.Options["label"] != "sample" {
		t.Errorf("Options = %v", summary.Options)
	}
}

func TestProcessDataWithoutConfig(t *testing.T) {
	summary, err := ProcessData([]any{"x"}, nil)
	if err != nil {
		t.Fatalf("ProcessData() error = %v", err)
	}
	if summary.ConfigName != "" {
		t.Errorf("ConfigName = %q, want empty", summary.ConfigName)
	}
	if len(summary.Options) != 0 {
		t.Errorf("Options = %v, want empty", summary.Options)
	}
}

func TestProcessDataRejectsEmptyInput(t *testing.T) {
	for _, items := range [][]any{nil, {}} {
		if _, err := ProcessData(items, nil); !voerrors.IsValidationError(err) {
			t.Errorf("ProcessData(%v) error = %v, want validation error", items, err)
		}
	}
}

func TestProcessDataCopiesOptions(t *testing.T) {
	opts := map[string]any{"k": "v"}
	summary, err := ProcessData([]any{1}, &Config{Name: "c", Options: opts})
	if err != nil {
		t.Fatalf("ProcessData() error = %v", err)
	}
	opts["k"] = "changed"
	if summary.Options["k"] != "v" {
		t.Errorf("Options[k] = %v, want v", summary.Options["k"])
	}
}
