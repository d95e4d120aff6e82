package risk

import (
	"regexp"
	"strings"

	"github.com/comet-cli/comet/internal/diffparse"
	"github.com/comet-cli/comet/internal/redact"
)

// Signal identifies one risk predicate.
type Signal string

const (
	SignalSecretsFound     Signal = "secrets-found"
	SignalDestructive      Signal = "destructive-statement"
	SignalProductionPath   Signal = "production-path-touched"
	SignalBreakingChange   Signal = "breaking-change-marker"
	SignalLargeDeletion    Signal = "large-deletion"
	SignalTestFileRemoved  Signal = "test-file-removed"
	SignalMigrationTouched Signal = "migration-file-touched"
)

// signalOrder fixes evaluation and checklist order.
var signalOrder = []Signal{
	SignalSecretsFound,
	SignalDestructive,
	SignalProductionPath,
	SignalBreakingChange,
	SignalLargeDeletion,
	SignalTestFileRemoved,
	SignalMigrationTouched,
}

// checklistPrompts maps each signal to its fixed review prompt.
var checklistPrompts = map[Signal]string{
	SignalSecretsFound:     "Secrets were detected and redacted. Rotate any credential that was ever committed.",
	SignalDestructive:      "Destructive statements (DROP/TRUNCATE/DELETE FROM or forced deletion) were added. Confirm they are intentional and reversible.",
	SignalProductionPath:   "Production configuration is touched. Double-check the deployment impact.",
	SignalBreakingChange:   "A breaking-change marker or major version bump is present. Verify downstream consumers.",
	SignalLargeDeletion:    "A large amount of code is being deleted. Make sure nothing still depends on it.",
	SignalTestFileRemoved:  "Test files are being removed. Confirm coverage is preserved elsewhere.",
	SignalMigrationTouched: "Schema or migration files changed. Review rollback strategy before deploying.",
}

// Weights holds the per-signal score contributions. SecretPerFinding
// accumulates per redaction finding up to SecretCap.
type Weights struct {
	SecretPerFinding float64
	SecretCap        float64
	Destructive      float64
	ProductionPath   float64
	BreakingChange   float64
	LargeDeletion    float64
	TestFileRemoved  float64
	MigrationTouched float64
}

// Thresholds holds the predicate tuning knobs.
type Thresholds struct {
	// LargeDeletionLines fires large-deletion at this absolute removed count.
	LargeDeletionLines int
	// LargeDeletionRatio fires when removed lines exceed this share of all
	// changed lines, given at least MinLinesForRatio changes.
	LargeDeletionRatio float64
	MinLinesForRatio   int
	// ProductionPaths are substring patterns marking production config.
	ProductionPaths []string
}

// DefaultWeights are the shipped policy values.
func DefaultWeights() Weights {
	return Weights{
		SecretPerFinding: 0.15,
		SecretCap:        0.45,
		Destructive:      0.30,
		ProductionPath:   0.25,
		BreakingChange:   0.20,
		LargeDeletion:    0.15,
		TestFileRemoved:  0.15,
		MigrationTouched: 0.15,
	}
}

// DefaultThresholds are the shipped predicate defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeDeletionLines: 300,
		LargeDeletionRatio: 0.8,
		MinLinesForRatio:   50,
		ProductionPaths:    []string{"prod/", "production.", "production/", "/prod."},
	}
}

// Assessment is the scored result with its human-readable checklist.
type Assessment struct {
	Score     float64
	Signals   []Signal
	Checklist []string
}

// Fired reports whether the given signal is present.
func (a *Assessment) Fired(s Signal) bool {
	for _, got := range a.Signals {
		if got == s {
			return true
		}
	}
	return false
}

var destructivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bDROP\s+(TABLE|DATABASE|SCHEMA|INDEX|VIEW)\b`),
	regexp.MustCompile(`(?i)\bTRUNCATE(\s+TABLE)?\b`),
	regexp.MustCompile(`(?i)\bDELETE\s+FROM\b`),
	regexp.MustCompile(`\brm\s+-[a-z]*[rf][a-z]*f?\b`),
	regexp.MustCompile(`\bgit\s+push\s+.*--force\b`),
}

var breakingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`BREAKING[ -]CHANGE`),
	regexp.MustCompile(`(?i)"version"\s*:\s*"[1-9][0-9]*\.0\.0"`),
	regexp.MustCompile(`/v[2-9][0-9]*(/|"|$)`),
}

var migrationPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)migrat`),
	regexp.MustCompile(`(?i)\bschema\b|schema\.(sql|rb|prisma|graphql)`),
	regexp.MustCompile(`(?i)alembic`),
	regexp.MustCompile(`(?i)flyway`),
}

var testPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`_test\.[a-z]+$`),
	regexp.MustCompile(`(^|/)test_[^/]+$`),
	regexp.MustCompile(`(^|/)tests?/`),
	regexp.MustCompile(`[._]spec\.[a-z]+$`),
}

// Assess evaluates every signal against the redacted change set and the
// redaction findings.
func Assess(cs *diffparse.ChangeSet, findings []redact.Finding, w Weights, th Thresholds) Assessment {
	fired := map[Signal]bool{}
	contrib := map[Signal]float64{}

	if n := len(findings); n > 0 {
		fired[SignalSecretsFound] = true
		c := float64(n) * w.SecretPerFinding
		if c > w.SecretCap {
			c = w.SecretCap
		}
		contrib[SignalSecretsFound] = c
	}

	if anyAddedLine(cs, func(l string) bool { return matchesAny(l, destructivePatterns) }) {
		fired[SignalDestructive] = true
		contrib[SignalDestructive] = w.Destructive
	}

	for _, f := range cs.Files {
		if pathMatchesSubstrings(f.Path, th.ProductionPaths) {
			fired[SignalProductionPath] = true
			contrib[SignalProductionPath] = w.ProductionPath
			break
		}
	}

	if anyAddedLine(cs, func(l string) bool { return matchesAny(l, breakingPatterns) }) {
		fired[SignalBreakingChange] = true
		contrib[SignalBreakingChange] = w.BreakingChange
	}

	_, added, removed := cs.Stats()
	total := added + removed
	if removed >= th.LargeDeletionLines ||
		(total >= th.MinLinesForRatio && float64(removed) > th.LargeDeletionRatio*float64(total)) {
		fired[SignalLargeDeletion] = true
		contrib[SignalLargeDeletion] = w.LargeDeletion
	}

	for _, f := range cs.Files {
		path := f.Path
		if f.Status == diffparse.StatusRenamed {
			path = f.OldPath
		}
		if (f.Status == diffparse.StatusDeleted || f.Status == diffparse.StatusRenamed) &&
			matchesAny(path, testPathPatterns) {
			fired[SignalTestFileRemoved] = true
			contrib[SignalTestFileRemoved] = w.TestFileRemoved
			break
		}
	}

	for _, f := range cs.Files {
		if matchesAny(f.Path, migrationPathPatterns) {
			fired[SignalMigrationTouched] = true
			contrib[SignalMigrationTouched] = w.MigrationTouched
			break
		}
	}

	var a Assessment
	seen := map[Signal]bool{}
	for _, s := range signalOrder {
		if !fired[s] || seen[s] {
			continue
		}
		seen[s] = true
		a.Signals = append(a.Signals, s)
		a.Checklist = append(a.Checklist, checklistPrompts[s])
		a.Score += contrib[s]
	}
	if a.Score > 1.0 {
		a.Score = 1.0
	}
	return a
}

func anyAddedLine(cs *diffparse.ChangeSet, pred func(string) bool) bool {
	for _, f := range cs.Files {
		for _, h := range f.Hunks {
			for _, l := range h.Added {
				if pred(l) {
					return true
				}
			}
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func pathMatchesSubstrings(path string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
