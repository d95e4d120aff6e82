package redact

import (
	"regexp"
	"sort"
	"strings"

	"github.com/comet-cli/comet/internal/diffparse"
)

// Kind identifies the category of secret a detector matched.
type Kind string

const (
	KindPrivateKey    Kind = "private-key"
	KindAWSAccessKey  Kind = "aws-access-key"
	KindAWSSecretKey  Kind = "aws-secret-key"
	KindAPIKey        Kind = "api-key"
	KindGenericSecret Kind = "generic-secret"
	KindBearerToken   Kind = "bearer-token"
	KindJWT           Kind = "jwt"
	KindConnectionURI Kind = "connection-uri"
	KindGitHubToken   Kind = "github-token"
	KindSlackToken    Kind = "slack-token"
	KindAnthropicKey  Kind = "anthropic-key"
	KindOpenAIKey     Kind = "openai-key"
	KindEnvAssignment Kind = "env-assignment"
)

const placeholderPrefix = "[REDACTED:"

// Placeholder returns the substitution text for a secret kind. The original
// bytes never appear in it.
func Placeholder(k Kind) string {
	return placeholderPrefix + string(k) + "]"
}

// detector pairs a secret kind with its pattern. When group is nonzero, only
// that capture group's span is replaced, keeping surrounding text (the key
// name, the URI host) intact.
type detector struct {
	kind  Kind
	re    *regexp.Regexp
	group int
}

// detectors run in this fixed order; the order only matters for breaking ties
// between equal-length overlapping matches.
var detectors = []detector{
	{KindPrivateKey, regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`), 0},
	{KindAWSAccessKey, regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`), 0},
	{KindAWSSecretKey, regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key\s*[:=]\s*["']?([A-Za-z0-9/+=]{30,})["']?`), 1},
	{KindAPIKey, regexp.MustCompile(`(?i)\b(?:api[_-]?key|apikey|api[_-]?secret|access[_-]?token|auth[_-]?token)\s*[:=]\s*["']?([A-Za-z0-9/+=_.-]{16,})["']?`), 1},
	{KindGenericSecret, regexp.MustCompile(`(?i)\b(?:secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`), 1},
	{KindBearerToken, regexp.MustCompile(`(?i)\bBearer\s+([A-Za-z0-9._-]{20,})`), 1},
	{KindJWT, regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}`), 0},
	{KindConnectionURI, regexp.MustCompile(`\b[a-z][a-z0-9+]{1,12}://[^:/\s@]+:([^@\s]+)@`), 1},
	{KindGitHubToken, regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9_]{36,}\b`), 0},
	{KindSlackToken, regexp.MustCompile(`\bxox[bporas]-[A-Za-z0-9-]{10,}\b`), 0},
	{KindAnthropicKey, regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{20,}\b`), 0},
	{KindOpenAIKey, regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}\b`), 0},
	{KindEnvAssignment, regexp.MustCompile(`\b(?:export\s+)?[A-Z][A-Z0-9_]*(?:SECRET|TOKEN|PASSWORD|PASSWD|KEY|CREDENTIAL)[A-Z0-9_]*\s*=\s*(\S+)`), 1},
}

// Finding records one redacted span. Line is approximate: the hunk start
// offset by the line's position among its added or removed siblings.
type Finding struct {
	Kind Kind
	File string
	Line int
}

// Result carries the fully redacted diff text and the ordered findings.
type Result struct {
	Text     string
	Findings []Finding
}

// span is a resolved match within a single line.
type span struct {
	start, end int
	kind       Kind
	order      int
}

// redactLine substitutes every resolved secret span in one line. Spans that
// already contain a placeholder are skipped, which makes redaction idempotent.
func redactLine(line string) (string, []Kind) {
	var candidates []span
	for i, d := range detectors {
		for _, m := range d.re.FindAllStringSubmatchIndex(line, -1) {
			start, end := m[0], m[1]
			if d.group > 0 && m[2*d.group] >= 0 {
				start, end = m[2*d.group], m[2*d.group+1]
			}
			if start >= end {
				continue
			}
			if strings.Contains(line[start:end], placeholderPrefix) {
				continue
			}
			candidates = append(candidates, span{start: start, end: end, kind: d.kind, order: i})
		}
	}
	if len(candidates) == 0 {
		return line, nil
	}

	// Longest match wins; detector order, then position, break ties.
	sort.Slice(candidates, func(i, j int) bool {
		li, lj := candidates[i].end-candidates[i].start, candidates[j].end-candidates[j].start
		if li != lj {
			return li > lj
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		return candidates[i].start < candidates[j].start
	})

	var accepted []span
	for _, c := range candidates {
		overlaps := false
		for _, a := range accepted {
			if c.start < a.end && a.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}

	// Substitute right to left so earlier offsets stay valid.
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start > accepted[j].start })
	kinds := make([]Kind, 0, len(accepted))
	for _, a := range accepted {
		line = line[:a.start] + Placeholder(a.kind) + line[a.end:]
	}
	// Report kinds in left-to-right order.
	for i := len(accepted) - 1; i >= 0; i-- {
		kinds = append(kinds, accepted[i].kind)
	}
	return line, kinds
}

// Text redacts arbitrary multi-line text. Lines are substituted in place and
// never removed or reordered.
func Text(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i], _ = redactLine(l)
	}
	return strings.Join(lines, "\n")
}

// Apply redacts the hunk text of a change set and the raw diff it came from.
// The input change set is not modified. Redaction never fails: text that
// matches no detector passes through untouched.
func Apply(cs *diffparse.ChangeSet, raw string) (*diffparse.ChangeSet, Result) {
	out := &diffparse.ChangeSet{RawLen: cs.RawLen}
	var findings []Finding

	for _, f := range cs.Files {
		nf := f
		nf.Hunks = make([]diffparse.Hunk, len(f.Hunks))
		for hi, h := range f.Hunks {
			nh := h
			nh.Added = make([]string, len(h.Added))
			nh.Removed = make([]string, len(h.Removed))
			for i, l := range h.Added {
				redacted, kinds := redactLine(l)
				nh.Added[i] = redacted
				for _, k := range kinds {
					findings = append(findings, Finding{Kind: k, File: f.Path, Line: h.NewStart + i})
				}
			}
			for i, l := range h.Removed {
				redacted, kinds := redactLine(l)
				nh.Removed[i] = redacted
				for _, k := range kinds {
					findings = append(findings, Finding{Kind: k, File: f.Path, Line: h.OldStart + i})
				}
			}
			nf.Hunks[hi] = nh
		}
		out.Files = append(out.Files, nf)
	}

	return out, Result{Text: Text(raw), Findings: findings}
}
