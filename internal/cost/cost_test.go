package cost

import (
	"errors"
	"strings"
	"testing"
)

func TestTokens_FamilyRatios(t *testing.T) {
	payload := strings.Repeat("a", 4000)
	claudeRatio := 3.8

	tests := []struct {
		model string
		want  int
	}{
		{"claude-sonnet-4-20250514", int(float64(4000)/claudeRatio) + 1},
		{"gpt-4o-mini", 1001},
		{"o1-preview", 1001},
		{"gemini-1.5-pro", 1001},
		{"llama3", 1001}, // unknown falls back to the default ratio
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := Tokens(payload, tt.model); got != tt.want {
				t.Errorf("Tokens = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTokens_ScalesWithPayload(t *testing.T) {
	small := Tokens(strings.Repeat("x", 100), "gpt-4o")
	large := Tokens(strings.Repeat("x", 10000), "gpt-4o")
	if large <= small {
		t.Errorf("large payload estimated at %d tokens, small at %d", large, small)
	}
}

func TestForPayload_Dollars(t *testing.T) {
	payload := strings.Repeat("a", 4000)
	est := ForPayload(payload, "gpt-4o")
	if est.Tokens != 1001 {
		t.Fatalf("Tokens = %d, want 1001", est.Tokens)
	}
	want := 1001.0 / 1000.0 * 0.0025
	if diff := est.Dollars - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Dollars = %v, want %v", est.Dollars, want)
	}
}

func TestEnforce(t *testing.T) {
	est := Estimate{Tokens: 5000, Dollars: 0.05}

	t.Run("over ceiling", func(t *testing.T) {
		err := Enforce(est, 0.01)
		var ex *ExceededError
		if !errors.As(err, &ex) {
			t.Fatalf("error = %v, want *ExceededError", err)
		}
		if ex.Estimated != 0.05 || ex.Ceiling != 0.01 {
			t.Errorf("ExceededError = %+v", ex)
		}
		if !strings.Contains(ex.Error(), "$0.0500") || !strings.Contains(ex.Error(), "$0.0100") {
			t.Errorf("Error() = %q", ex.Error())
		}
	})

	t.Run("under ceiling", func(t *testing.T) {
		if err := Enforce(est, 0.10); err != nil {
			t.Errorf("Enforce = %v, want nil", err)
		}
	})

	t.Run("zero ceiling disables", func(t *testing.T) {
		if err := Enforce(est, 0); err != nil {
			t.Errorf("Enforce = %v, want nil", err)
		}
	})
}
