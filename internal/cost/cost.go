package cost

import (
	"fmt"
	"strings"
)

// Estimate is the predicted spend for one generation request.
type Estimate struct {
	Tokens  int
	Dollars float64
}

// ExceededError is returned when the estimate is over the configured ceiling.
// It fires strictly before any network-bound step.
type ExceededError struct {
	Estimated float64
	Ceiling   float64
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("estimated cost $%.4f exceeds ceiling $%.4f", e.Estimated, e.Ceiling)
}

// modelFamily groups model identifiers by prefix for ratio/price lookup.
type modelFamily struct {
	prefix string
	// charsPerToken is the approximate character-to-token ratio for the
	// family's tokenizer. 4.0 is the usual English-text rule of thumb.
	charsPerToken float64
	// pricePer1K is dollars per thousand input tokens. Values track public
	// list prices loosely and exist for budgeting, not billing.
	pricePer1K float64
}

var families = []modelFamily{
	{prefix: "claude", charsPerToken: 3.8, pricePer1K: 0.003},
	{prefix: "gpt", charsPerToken: 4.0, pricePer1K: 0.0025},
	{prefix: "o1", charsPerToken: 4.0, pricePer1K: 0.015},
	{prefix: "gemini", charsPerToken: 4.0, pricePer1K: 0.00125},
}

// defaultFamily covers unknown and local models. Local models bill nothing,
// but the token estimate is still useful for size guards.
var defaultFamily = modelFamily{charsPerToken: 4.0, pricePer1K: 0.002}

func familyFor(model string) modelFamily {
	m := strings.ToLower(model)
	for _, f := range families {
		if strings.HasPrefix(m, f.prefix) {
			return f
		}
	}
	return defaultFamily
}

// Tokens estimates the token count of a payload for the given model.
func Tokens(payload, model string) int {
	f := familyFor(model)
	return int(float64(len(payload))/f.charsPerToken) + 1
}

// ForPayload estimates tokens and dollars for sending payload to model.
func ForPayload(payload, model string) Estimate {
	f := familyFor(model)
	tokens := Tokens(payload, model)
	return Estimate{
		Tokens:  tokens,
		Dollars: float64(tokens) / 1000.0 * f.pricePer1K,
	}
}

// Enforce returns an *ExceededError when ceiling is set (> 0) and the
// estimate is over it.
func Enforce(est Estimate, ceiling float64) error {
	if ceiling > 0 && est.Dollars > ceiling {
		return &ExceededError{Estimated: est.Dollars, Ceiling: ceiling}
	}
	return nil
}
