package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/comet-cli/comet/internal/group"
	"github.com/comet-cli/comet/internal/risk"
)

// WriteRisk renders a risk assessment. format is "text" or "json".
func WriteRisk(w io.Writer, a risk.Assessment, format string) error {
	switch format {
	case "json":
		return writeJSON(w, riskPayload{
			Score:     a.Score,
			Signals:   a.Signals,
			Checklist: a.Checklist,
		})
	case "text", "":
		return writeRiskText(w, a)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

type riskPayload struct {
	Score     float64       `json:"score"`
	Signals   []risk.Signal `json:"signals"`
	Checklist []string      `json:"checklist"`
}

func writeRiskText(w io.Writer, a risk.Assessment) error {
	ew := &errWriter{w: w}
	ew.printf("Risk score: %.2f\n", a.Score)
	if len(a.Checklist) == 0 {
		ew.println("No risk signals fired.")
		return ew.err
	}
	ew.println(strings.Repeat("─", 60))
	for i, prompt := range a.Checklist {
		ew.printf("[%s] %s\n", a.Signals[i], prompt)
	}
	return ew.err
}

// WriteGroups renders suggested commit groups along with manual re-staging
// instructions. format is "text" or "json".
func WriteGroups(w io.Writer, groups []group.Group, format string) error {
	switch format {
	case "json":
		return writeJSON(w, groups)
	case "text", "":
		return writeGroupsText(w, groups)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeGroupsText(w io.Writer, groups []group.Group) error {
	ew := &errWriter{w: w}
	if len(groups) == 0 {
		ew.println("Nothing to group.")
		return ew.err
	}
	ew.printf("Suggested commit groups: %d\n", len(groups))
	ew.println(strings.Repeat("─", 60))
	for i, g := range groups {
		ew.printf("Group %d (~%d chars): %s\n", i+1, g.ApproxSize, g.Subject)
		for _, f := range g.Files {
			ew.printf("  %s\n", f)
		}
	}
	ew.println(strings.Repeat("─", 60))
	ew.println("To commit each group separately:")
	ew.println("  1. git restore --staged .")
	ew.println("  2. git add <files of one group>")
	ew.println("  3. run comet generate, then repeat")
	return ew.err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// errWriter collects the first write error so render code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
