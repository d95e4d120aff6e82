package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/comet-cli/comet/internal/cache"
	"github.com/comet-cli/comet/internal/config"
	"github.com/comet-cli/comet/internal/cost"
	"github.com/comet-cli/comet/internal/diffparse"
	"github.com/comet-cli/comet/internal/generate"
	"github.com/comet-cli/comet/internal/gitio"
	"github.com/comet-cli/comet/internal/llm"
	"github.com/comet-cli/comet/internal/output"
)

// Shared flags across generate, risk, and groups.
var (
	flagRange    string
	flagStyle    string
	flagProvider string
	flagModel    string
	flagFormat   string
)

// generate-specific flags
var (
	flagExplain       bool
	flagNoLLM         bool
	flagMaxCost       float64
	flagWrite         bool
	flagForceWrite    bool
	flagSuggestGroups bool
	flagNoCache       bool
)

func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagRange, "range", "r", "", "Git revision range to analyze instead of staged changes")
	cmd.Flags().StringVarP(&flagStyle, "style", "s", "", "Message style: conventional or casual")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagStyle != "" {
		m["style"] = flagStyle
	}
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagMaxCost > 0 {
		m["maxCost"] = fmt.Sprintf("%g", flagMaxCost)
	}
	if flagNoLLM {
		m["noLLM"] = "true"
	}
	return m
}

// loadDiff fetches the staged diff or, with --range, a revision range.
func loadDiff(cfg config.Config) (string, error) {
	if flagRange != "" {
		return gitio.RangeDiff(flagRange, cfg.ContextLines)
	}
	return gitio.StagedDiff(cfg.ContextLines)
}

// openStore opens the cache, degrading to uncached operation on IO errors.
func openStore(cfg config.Config) *cache.Store {
	if flagNoCache {
		return nil
	}
	store, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds, cfg.Cache.MaxEntries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cache unavailable (%v), continuing without it\n", err)
		return nil
	}
	return store
}

var generateCmd = &cobra.Command{
	Use:   "generate [purpose]",
	Short: "Generate a commit message from staged changes",
	Long: "Generate a commit message from the staged diff (or --range). An optional\n" +
		"purpose argument states your intent and is passed to the model as context.",
	Args: cobra.MaximumNArgs(1),
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
			fmt.Fprintln(os.Stderr, "No changes to summarize.")
			exitCode = ExitRuntimeError
			return nil
		}

		opts := generate.OptionsFromConfig(cfg)
		opts.Explain = flagExplain
		opts.SuggestGroups = flagSuggestGroups
		if len(args) > 0 {
			opts.Purpose = args[0]
		}
		opts.Branch = gitio.Branch()
		opts.RecentSubjects = gitio.RecentSubjects(5)

		var client llm.Client
		if !opts.NoLLM {
			client, err = llm.New(cfg.Provider, cfg.Model)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Note: %v. Falling back to the offline generator.\n", err)
				client = nil
			}
		}

		store := openStore(cfg)

		var spin *spinner.Spinner
		if client != nil {
			spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr))
			spin.Suffix = " Generating commit message..."
			spin.Start()
		}
		res, err := generate.Run(context.Background(), diff, opts, client, store)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			reportPipelineError(err)
			return nil
		}

		if res.CacheErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed (%v), result not cached\n", res.CacheErr)
		}
		if flagExplain {
			cacheState := "miss"
			if res.Cached {
				cacheState = "hit"
			}
			fmt.Fprintf(os.Stderr, "[explain] run %s :: ~%d tokens, est $%.4f, cache %s, generator %s\n",
				res.RunID, res.Estimate.Tokens, res.Estimate.Dollars, cacheState, res.Generator)
			if res.TooLarge {
				fmt.Fprintln(os.Stderr, "[explain] Diff too large for reliable AI summarization; used the offline generator. Try --suggest-groups.")
			}
		}

		if len(res.Groups) > 0 {
			if err := output.WriteGroups(os.Stdout, res.Groups, "text"); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				exitCode = ExitRuntimeError
			}
			return nil
		}

		fmt.Fprintln(os.Stdout, res.Message)

		if flagWrite {
			writeCommit(res, cfg)
		}
		return nil
	},
}

// writeCommit runs git commit, refusing generic messages on very large diffs
// unless forced.
func writeCommit(res *generate.Result, cfg config.Config) {
	subject, _, _ := strings.Cut(res.Message, "\n")
	if !flagForceWrite && cfg.LargeDiffTokens > 0 &&
		res.Estimate.Tokens > cfg.LargeDiffTokens && generate.GenericSubject(subject) {
		fmt.Fprintf(os.Stderr, "Refusing to commit: %q is too generic for a ~%d token diff.\n",
			subject, res.Estimate.Tokens)
		fmt.Fprintln(os.Stderr, "Use --suggest-groups to split the change, or --force-write to override.")
		exitCode = ExitRuntimeError
		return
	}
	if err := gitio.Commit(res.Message); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
	}
}

// reportPipelineError maps pipeline failures to messages and exit codes so
// the user learns which stage failed.
func reportPipelineError(err error) {
	var parseErr *diffparse.ParseError
	var costErr *cost.ExceededError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "Error: diff could not be parsed: %v\n", err)
		exitCode = ExitRuntimeError
	case errors.As(err, &costErr):
		fmt.Fprintf(os.Stderr, "Error: %v. Raise --max-cost or use --no-llm.\n", err)
		exitCode = ExitCostExceeded
	case llm.IsAuthError(err):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
	case llm.IsRetryable(err):
		fmt.Fprintf(os.Stderr, "Error: %v (retryable; cache untouched)\n", err)
		exitCode = ExitRuntimeError
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
	}
}

func init() {
	addSharedFlags(generateCmd)
	generateCmd.Flags().BoolVarP(&flagExplain, "explain", "e", false, "Show run ID, token and cost estimate on stderr")
	generateCmd.Flags().BoolVar(&flagNoLLM, "no-llm", false, "Use the offline heuristic generator only")
	generateCmd.Flags().Float64Var(&flagMaxCost, "max-cost", 0, "Maximum spend in dollars for this run")
	generateCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "Commit with the generated message")
	generateCmd.Flags().BoolVar(&flagForceWrite, "force-write", false, "Commit even when the message looks too generic for a huge diff")
	generateCmd.Flags().BoolVar(&flagSuggestGroups, "suggest-groups", false, "Suggest how to split a large diff into focused commits")
	generateCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the result cache")
}
