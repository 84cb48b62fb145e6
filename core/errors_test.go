package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainErrorChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{
			name:  "missing features",
			err:   NewMissingFeaturesError([]string{"age"}),
			check: IsMissingFeatures,
			want:  true,
		},
		{
			name:  "inference failure",
			err:   NewInferenceError("Ciprofloxacin", fmt.Errorf("boom")),
			check: IsInferenceFailure,
			want:  true,
		},
		{
			name:  "render failure",
			err:   NewRenderError("tabular", fmt.Errorf("boom")),
			check: IsRenderFailure,
			want:  true,
		},
		{
			name:  "plain error is nothing",
			err:   fmt.Errorf("boom"),
			check: IsMissingFeatures,
			want:  false,
		},
		{
			name:  "nil error",
			err:   nil,
			check: IsInferenceFailure,
			want:  false,
		},
		{
			name:  "wrapped still detected",
			err:   fmt.Errorf("request failed: %w", NewMissingFeaturesError([]string{"age"})),
			check: IsMissingFeatures,
			want:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingFeaturesError(t *testing.T) {
	err := NewMissingFeaturesError([]string{"age", "bacteria_count"})
	if !strings.Contains(err.Error(), "age, bacteria_count") {
		t.Errorf("message = %q, want feature names listed", err.Error())
	}

	de := GetDomainError(err)
	if de == nil {
		t.Fatal("GetDomainError returned nil")
	}
	if de.Module != ModuleSchema || de.Code != ErrorCodeMissingFeatures {
		t.Errorf("domain error = %+v", de)
	}
}

func TestInferenceErrorExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInferenceError("Meropenem", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	var infErr *InferenceError
	if !errors.As(err, &infErr) || infErr.Label != "Meropenem" {
		t.Errorf("errors.As = %+v", infErr)
	}
	if GetDomainError(err).Code != ErrorCodeInferenceFailure {
		t.Errorf("code = %q", GetDomainError(err).Code)
	}
}

func TestExplanationErrorExposesCause(t *testing.T) {
	cause := errors.New("contribution length mismatch")
	err := NewExplanationError("Ciprofloxacin", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if !IsExplanationFailure(err) {
		t.Error("IsExplanationFailure should match")
	}
	de := GetDomainError(err)
	if de.Module != ModuleExplain || de.Code != ErrorCodeExplanationFailure {
		t.Errorf("domain error = %+v", de)
	}
	if !strings.Contains(err.Error(), "Ciprofloxacin") {
		t.Errorf("message = %q, want label named", err.Error())
	}
}
