package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comet-cli/comet/internal/config"
	"github.com/comet-cli/comet/internal/diffparse"
	"github.com/comet-cli/comet/internal/output"
	"github.com/comet-cli/comet/internal/redact"
	"github.com/comet-cli/comet/internal/risk"
)

var flagRiskCheck bool

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Assess the risk of the staged changes",
	Long: "Score the staged diff (or --range) against risk signals such as exposed\n" +
		"secrets, destructive statements, and production paths. With --check, exit\n" +
		"with status 2 when the score reaches the configured threshold.",
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
			fmt.Fprintln(os.Stderr, "No changes to assess.")
			exitCode = ExitRuntimeError
			return nil
		}

		cs, err := diffparse.Parse(diff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: diff could not be parsed: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		redacted, redaction := redact.Apply(cs, diff)

		th := risk.DefaultThresholds()
		if len(cfg.ProductionPaths) > 0 {
			th.ProductionPaths = cfg.ProductionPaths
		}
		assessment := risk.Assess(redacted, redaction.Findings, risk.DefaultWeights(), th)

		if err := output.WriteRisk(os.Stdout, assessment, flagFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagRiskCheck && assessment.Score >= cfg.RiskThreshold {
			fmt.Fprintf(os.Stderr, "Risk score %.2f is at or above the threshold %.2f.\n",
				assessment.Score, cfg.RiskThreshold)
			exitCode = ExitRiskBlocked
		}
		return nil
	},
}

func init() {
	addSharedFlags(riskCmd)
	riskCmd.Flags().BoolVar(&flagRiskCheck, "check", false, "Exit with status 2 when the score reaches the threshold")
	riskCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text or json")
}
