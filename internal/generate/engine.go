package generate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comet-cli/comet/internal/cache"
	"github.com/comet-cli/comet/internal/config"
	"github.com/comet-cli/comet/internal/cost"
	"github.com/comet-cli/comet/internal/diffparse"
	"github.com/comet-cli/comet/internal/group"
	"github.com/comet-cli/comet/internal/llm"
	"github.com/comet-cli/comet/internal/redact"
	"github.com/comet-cli/comet/internal/risk"
)

// Options are the per-invocation knobs for one pipeline run.
type Options struct {
	Style           string
	Explain         bool
	NoLLM           bool
	MaxCost         float64
	Model           string
	Purpose         string
	Branch          string
	RecentSubjects  []string
	SuggestGroups   bool
	GroupThreshold  int
	GroupSoftCap    int
	LargeDiffTokens int
	Weights         risk.Weights
	Thresholds      risk.Thresholds
}

// OptionsFromConfig seeds Options from the effective configuration.
func OptionsFromConfig(cfg config.Config) Options {
	th := risk.DefaultThresholds()
	if len(cfg.ProductionPaths) > 0 {
		th.ProductionPaths = cfg.ProductionPaths
	}
	return Options{
		Style:           cfg.Style,
		NoLLM:           cfg.NoLLM,
		MaxCost:         cfg.MaxCost,
		Model:           cfg.Model,
		GroupThreshold:  cfg.GroupThreshold,
		GroupSoftCap:    cfg.GroupSoftCap,
		LargeDiffTokens: cfg.LargeDiffTokens,
		Weights:         risk.DefaultWeights(),
		Thresholds:      th,
	}
}

// Result is everything one pipeline run produced.
type Result struct {
	RunID     string
	Message   string
	Generator string
	Cached    bool
	TooLarge  bool
	Cost      float64
	Estimate  cost.Estimate
	Risk      risk.Assessment
	Redaction redact.Result
	ChangeSet *diffparse.ChangeSet
	Groups    []group.Group
	// CacheErr records a cache IO failure. The run still succeeds; the
	// result simply was not cached.
	CacheErr error
}

// Run executes the pipeline on raw unified-diff text. client may be nil to
// force the heuristic path; store may be nil to disable caching.
func Run(ctx context.Context, rawDiff string, opts Options, client llm.Client, store *cache.Store) (*Result, error) {
	cs, err := diffparse.Parse(rawDiff)
	if err != nil {
		return nil, err
	}

	redacted, redaction := redact.Apply(cs, rawDiff)

	// Risk and cost have no data dependency on each other; both are pure
	// computations over redacted data.
	var (
		assessment risk.Assessment
		estimate   cost.Estimate
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		assessment = risk.Assess(redacted, redaction.Findings, opts.Weights, opts.Thresholds)
	}()
	go func() {
		defer wg.Done()
		estimate = cost.ForPayload(redaction.Text, opts.Model)
	}()
	wg.Wait()

	res := &Result{
		RunID:     uuid.NewString(),
		Estimate:  estimate,
		Risk:      assessment,
		Redaction: redaction,
		ChangeSet: redacted,
	}

	if opts.SuggestGroups && group.Needed(cs.RawLen, opts.GroupThreshold) {
		res.Groups = group.Split(redacted, opts.GroupSoftCap)
	}

	useLLM := client != nil && !opts.NoLLM
	if useLLM && opts.LargeDiffTokens > 0 && estimate.Tokens > opts.LargeDiffTokens {
		// Too big to summarize reliably; drop to the offline path.
		res.TooLarge = true
		useLLM = false
	}

	var strategy Strategy = Heuristic{}
	model := "offline"
	if useLLM {
		strategy = &llmStrategy{client: client}
		model = opts.Model
	}

	fingerprint := cache.Fingerprint(redaction.Text, opts.Style, opts.Explain, model)
	if store != nil {
		if entry, ok := store.Get(fingerprint); ok {
			res.Message = entry.Message
			res.Cost = entry.Cost
			res.Cached = true
			res.Generator = strategy.Name()
			return res, nil
		}
	}

	// The ceiling check happens strictly before any network-bound step.
	if useLLM {
		if err := cost.Enforce(estimate, opts.MaxCost); err != nil {
			return nil, err
		}
	}

	in := Input{
		ChangeSet: redacted,
		Request: llm.Request{
			Diff:           redaction.Text,
			Style:          opts.Style,
			Explain:        opts.Explain,
			Purpose:        opts.Purpose,
			Branch:         opts.Branch,
			RecentSubjects: opts.RecentSubjects,
		},
	}

	message, err := strategy.Generate(ctx, in)
	if err != nil {
		// No cache entry is written for a failed call.
		return nil, err
	}

	res.Message = message
	res.Generator = strategy.Name()
	if useLLM {
		res.Cost = estimate.Dollars
	}

	if store != nil {
		res.CacheErr = store.Put(cache.Entry{
			Fingerprint: fingerprint,
			Message:     message,
			Cost:        res.Cost,
			CreatedAt:   time.Now(),
		})
	}

	return res, nil
}
