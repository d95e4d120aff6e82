package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.1"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitRiskBlocked  = 2
	ExitCostExceeded = 3
	ExitUsageError   = 4
)

var rootCmd = &cobra.Command{
	Use:   "comet",
	Short: "AI-assisted git commit message generator",
	Long: "Comet turns staged changes into a commit message, with secret redaction,\n" +
		"risk assessment, and cost controls applied before anything leaves the machine.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print comet version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "comet version %s\n", version)
	},
}
