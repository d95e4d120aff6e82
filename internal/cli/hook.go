package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comet-cli/comet/internal/gitio"
)

const (
	hookMarkerStart = "# >>> comet prepare-commit-msg hook >>>"
	hookMarkerEnd   = "# <<< comet prepare-commit-msg hook <<<"
)

var (
	hookNoLLM     bool
	hookRiskCheck bool
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git prepare-commit-msg hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install comet as a git prepare-commit-msg hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		section := generateHookScript(hookNoLLM, hookRiskCheck)

		existing, err := os.ReadFile(hookPath)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error reading hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		var content string
		if os.IsNotExist(err) || len(existing) == 0 {
			// No existing hook — create new file
			content = "#!/bin/sh\n" + section
		} else {
			content = replaceCometSection(string(existing), section)
		}

		if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating hooks directory: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Installed comet prepare-commit-msg hook at %s\n", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the comet prepare-commit-msg hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		existing, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(os.Stdout, "No prepare-commit-msg hook found.")
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error reading hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		content := removeCometSection(string(existing))

		// If only shebang (and whitespace) remains, delete the file entirely
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := os.Remove(hookPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing hook file: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stdout, "Removed comet prepare-commit-msg hook at %s\n", hookPath)
			return nil
		}

		if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing hook file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Removed comet section from %s\n", hookPath)
		return nil
	},
}

func getHookPath() (string, error) {
	dir, err := gitio.HooksDir()
	if err != nil {
		return "", fmt.Errorf("not a git repository (%v)", err)
	}
	return filepath.Join(dir, "prepare-commit-msg"), nil
}

// generateHookScript emits the marker-delimited section. The hook only fills
// in the message when git did not receive one from -m, -F, a merge, etc.
func generateHookScript(noLLM, riskCheck bool) string {
	genFlags := ""
	if noLLM {
		genFlags = " --no-llm"
	}

	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString("if [ -z \"$2\" ]; then\n")
	if riskCheck {
		b.WriteString("  comet risk --check >/dev/null\n")
		b.WriteString("  if [ $? -eq 2 ]; then\n")
		b.WriteString("    echo \"comet: risk score above threshold, commit blocked\" >&2\n")
		b.WriteString("    exit 1\n")
		b.WriteString("  fi\n")
	}
	b.WriteString(fmt.Sprintf("  COMET_MSG=$(comet generate%s 2>/dev/null)\n", genFlags))
	b.WriteString("  if [ -n \"$COMET_MSG\" ]; then\n")
	b.WriteString("    printf '%s\\n' \"$COMET_MSG\" > \"$1\"\n")
	b.WriteString("  fi\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceCometSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		// No existing comet section — append
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	// Replace existing section
	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	// Trim leading newline from after to avoid double newlines
	after = strings.TrimPrefix(after, "\n")
	return before + section + after
}

func removeCometSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")

	return before + after
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookInstallCmd.Flags().BoolVar(&hookNoLLM, "no-llm", false, "Generate hook messages with the offline generator only")
	hookInstallCmd.Flags().BoolVar(&hookRiskCheck, "risk-check", false, "Block commits whose risk score reaches the threshold")
}
