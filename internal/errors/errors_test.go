package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestVOErrorMessage(t *testing.T) {
	err := NewConfigError("bad config")
	if err.Error() != "bad config" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad config")
	}

	cause := fmt.Errorf("file not found")
	err = NewConfigErrorWithCause("bad config", cause)
	if err.Error() != "bad config: file not found" {
		t.Errorf("Error() = %q, want cause appended", err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewLaunchErrorWithCause("launch failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("x"), ExitConfigError},
		{"validation", NewValidationError("x"), ExitValidationError},
		{"launch", NewLaunchError("x"), ExitLaunchError},
		{"hook", NewHookError("x"), ExitHookError},
		{"general", NewGeneralError("x"), ExitGeneralError},
		{"plain error", fmt.Errorf("plain"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	if !IsConfigError(NewConfigError("x")) {
		t.Error("IsConfigError should match config errors")
	}
	if IsConfigError(NewLaunchError("x")) {
		t.Error("IsConfigError should not match launch errors")
	}
	if !IsValidationError(NewValidationError("x")) {
		t.Error("IsValidationError should match validation errors")
	}
	if !IsLaunchError(NewLaunchErrorWithCause("x", fmt.Errorf("y"))) {
		t.Error("IsLaunchError should match launch errors")
	}
}
