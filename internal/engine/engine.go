// Package engine wires the pipeline: extract features, classify with
// rules and the model ensemble in parallel, arbitrate, and attach
// suggestions. It owns the model registry lifecycle; everything else
// is stateless per request.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/bigo/internal/advice"
	"github.com/standardbeagle/bigo/internal/arbiter"
	"github.com/standardbeagle/bigo/internal/config"
	"github.com/standardbeagle/bigo/internal/debug"
	"github.com/standardbeagle/bigo/internal/ensemble"
	bigoerrors "github.com/standardbeagle/bigo/internal/errors"
	"github.com/standardbeagle/bigo/internal/extractor"
	"github.com/standardbeagle/bigo/internal/heuristic"
	"github.com/standardbeagle/bigo/internal/types"
)

// Engine is safe for concurrent use.
type Engine struct {
	cfg        *config.Config
	extractor  *extractor.Extractor
	classifier *heuristic.Classifier
	registry   *ensemble.Registry
	predictor  *ensemble.Predictor
	advisor    *advice.Generator
}

// New builds an engine from configuration. When a models dir is
// configured it replaces the compiled-in defaults entirely.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var registry *ensemble.Registry
	if cfg.Models.UseDefaults {
		registry = ensemble.NewRegistry()
	} else {
		registry = ensemble.NewEmptyRegistry()
	}
	if cfg.Models.Dir != "" {
		if err := registry.LoadDir(cfg.Models.Dir); err != nil {
			return nil, err
		}
	}

	return &Engine{
		cfg:        cfg,
		extractor:  extractor.New(),
		classifier: heuristic.New(),
		registry:   registry,
		predictor:  ensemble.NewPredictor(registry, cfg.Models.Parallelism),
		advisor:    advice.New(),
	}, nil
}

// Watch starts artifact hot-reloading when configured. No-op without a
// models dir.
func (e *Engine) Watch(ctx context.Context) error {
	if !e.cfg.Models.Watch {
		return nil
	}
	return e.registry.Watch(ctx, time.Duration(e.cfg.Models.WatchDebounceMs)*time.Millisecond)
}

// Close stops the registry watcher.
func (e *Engine) Close() error {
	return e.registry.Close()
}

// Registry exposes the model registry for status surfaces.
func (e *Engine) Registry() *ensemble.Registry {
	return e.registry
}

// Analyze runs the combined pipeline: both classifiers evaluate the
// record independently and the arbiter promotes one verdict. An
// unavailable ensemble degrades to heuristic-only, never to an error.
func (e *Engine) Analyze(ctx context.Context, code, language string) (*types.Result, error) {
	record, err := e.extract(code, language)
	if err != nil {
		return nil, err
	}

	var (
		heuristicVerdict types.Verdict
		ensembleVerdict  types.Verdict
		agreement        *types.ModelAgreement
		ensembleErr      error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		heuristicVerdict = e.classifier.Classify(record)
		return nil
	})
	g.Go(func() error {
		ensembleVerdict, agreement, ensembleErr = e.predictor.Predict(gctx, record)
		var unavailable *bigoerrors.ModelUnavailableError
		if errors.As(ensembleErr, &unavailable) {
			// Absent ensemble is a degraded mode, not a failure.
			return nil
		}
		return ensembleErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ensemblePtr *types.Verdict
	if ensembleErr == nil {
		ensemblePtr = &ensembleVerdict
	} else {
		debug.LogAnalysis("ensemble unavailable, heuristic-only: %v", ensembleErr)
	}

	result := arbiter.Arbitrate(heuristicVerdict, ensemblePtr, agreement)
	e.attachSuggestions(&result, record, heuristicVerdict)
	return &result, nil
}

// AnalyzeRules runs the heuristic-only pipeline.
func (e *Engine) AnalyzeRules(ctx context.Context, code, language string) (*types.Result, error) {
	record, err := e.extract(code, language)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verdict := e.classifier.Classify(record)
	result := arbiter.Arbitrate(verdict, nil, nil)
	e.attachSuggestions(&result, record, verdict)
	return &result, nil
}

func (e *Engine) extract(code, language string) (types.FeatureRecord, error) {
	if strings.TrimSpace(code) == "" {
		return types.FeatureRecord{}, bigoerrors.NewValidationError("code", "must be non-empty after trimming")
	}
	if len(code) > e.cfg.Engine.MaxCodeBytes {
		return types.FeatureRecord{}, bigoerrors.NewValidationError("code", "exceeds the configured size limit")
	}

	record := e.extractor.Extract(code, language)
	if record.Degraded {
		debug.LogAnalysis("degraded extraction: %v", bigoerrors.NewUnsupportedLanguageError(language))
	}
	return record, nil
}

func (e *Engine) attachSuggestions(result *types.Result, record types.FeatureRecord, heuristicVerdict types.Verdict) {
	final, err := types.ParseClass(result.TimeComplexity)
	if err != nil {
		final = types.ON
	}
	space, err := types.ParseClass(result.SpaceComplexity)
	if err != nil {
		space = types.ON
	}

	fallback := heuristicVerdict.FallbackApplied && result.AnalysisMethod == types.MethodRuleBased
	result.Suggestions = e.advisor.Suggest(final, space, record, fallback)

	if record.Degraded {
		result.Breakdown = append(result.Breakdown,
			"language not registered; generic grammar applied with reduced precision")
	}
}
