package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comet-cli/comet/internal/config"
	"github.com/comet-cli/comet/internal/diffparse"
	"github.com/comet-cli/comet/internal/group"
	"github.com/comet-cli/comet/internal/output"
	"github.com/comet-cli/comet/internal/redact"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Suggest how to split staged changes into focused commits",
	Long: "Cluster the files in the staged diff (or --range) by directory and\n" +
		"extension so a sprawling change can land as separate, reviewable commits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		diff, err := loadDiff(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if strings.TrimSpace(diff) == "" {
			fmt.Fprintln(os.Stderr, "No changes to group.")
			exitCode = ExitRuntimeError
			return nil
		}

		cs, err := diffparse.Parse(diff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: diff could not be parsed: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		redacted, _ := redact.Apply(cs, diff)
		groups := group.Split(redacted, cfg.GroupSoftCap)

		if err := output.WriteGroups(os.Stdout, groups, flagFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	addSharedFlags(groupsCmd)
	groupsCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text or json")
}
