package llm

import (
	"fmt"
	"strings"
)

const conventionalSystemPrompt = `You generate conventional git commit messages from a unified diff.
Output only the commit message, no other text or explanation.
Format:
- First line: "type: short summary", 72 characters or less, imperative mood,
  lower case start, no trailing punctuation. Choose type from
  [feat, fix, perf, refactor, docs, test, build, chore, ci].
- Blank line, then a longer description if the change warrants one,
  wrapped at 72 characters.
Do not use markdown, code blocks, or quotes. Secrets in the diff have been
replaced with [REDACTED:...] placeholders; never mention them.`

const casualSystemPrompt = `You write short, friendly git commit messages from a unified diff.
Output only the commit message, no other text or explanation.
First line under 72 characters, plain language, capitalized, no trailing
punctuation. Add a short body only when the change needs context.
Do not use markdown, code blocks, or quotes. Secrets in the diff have been
replaced with [REDACTED:...] placeholders; never mention them.`

// SystemPrompt returns the instruction block for a message style.
func SystemPrompt(style string) string {
	if style == "casual" {
		return casualSystemPrompt
	}
	return conventionalSystemPrompt
}

// UserPrompt assembles the payload sent alongside the system prompt.
func UserPrompt(req Request) string {
	var b strings.Builder
	if req.Branch != "" {
		fmt.Fprintf(&b, "Branch: %s\n", req.Branch)
	}
	if len(req.RecentSubjects) > 0 {
		b.WriteString("Recent commit subjects (match their tone):\n")
		for _, s := range req.RecentSubjects {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if req.Purpose != "" {
		fmt.Fprintf(&b, "Author's stated intent: %s\n", req.Purpose)
	}
	b.WriteString("\nDiff:\n")
	b.WriteString(req.Diff)
	return b.String()
}
