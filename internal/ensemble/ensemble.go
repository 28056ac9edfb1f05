// Package ensemble predicts complexity with a set of small trained
// models and aggregates their votes by plurality. Model artifacts are
// TOML files loaded into an immutable set; reloads swap the whole set
// atomically so concurrent requests never see a partial update.
package ensemble

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	bigoerrors "github.com/standardbeagle/bigo/internal/errors"
	"github.com/standardbeagle/bigo/internal/types"
)

// Predictor runs the loaded models against one feature record.
type Predictor struct {
	registry    *Registry
	parallelism int
}

// NewPredictor wraps a registry. parallelism bounds concurrent model
// evaluations per request; zero or negative means one goroutine per
// model.
func NewPredictor(registry *Registry, parallelism int) *Predictor {
	return &Predictor{registry: registry, parallelism: parallelism}
}

// Predict votes every loaded model and aggregates per axis. Returns
// ModelUnavailableError when no models are loaded; the arbiter treats
// that as the ensemble being absent, not as a request failure.
func (p *Predictor) Predict(ctx context.Context, record types.FeatureRecord) (types.Verdict, *types.ModelAgreement, error) {
	set := p.registry.current.Load()
	if len(set.models) == 0 {
		return types.Verdict{}, nil, bigoerrors.NewModelUnavailableError("predict", nil)
	}

	vector := Project(record)
	votes := make([]types.ModelVote, len(set.models))

	g, ctx := errgroup.WithContext(ctx)
	if p.parallelism > 0 {
		g.SetLimit(p.parallelism)
	}
	for i, model := range set.models {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			votes[i] = model.Vote(vector)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Verdict{}, nil, err
	}

	return aggregate(votes)
}

// aggregate reduces the vote multiset to one verdict per the plurality
// rule. Order-independent; ties go to the lower class, the more
// conservative estimate.
func aggregate(votes []types.ModelVote) (types.Verdict, *types.ModelAgreement, error) {
	n := len(votes)

	timeCounts := make(map[types.ComplexityClass]int, n)
	spaceCounts := make(map[types.ComplexityClass]int, n)
	for _, vote := range votes {
		timeCounts[vote.PredictedTime]++
		spaceCounts[vote.PredictedSpace]++
	}

	timeWinner := plurality(timeCounts)
	spaceWinner := plurality(spaceCounts)

	timeConf := axisConfidence(votes, timeWinner, n, func(v types.ModelVote) (types.ComplexityClass, float64) {
		return v.PredictedTime, v.PredictedProbability
	})
	spaceConf := axisConfidence(votes, spaceWinner, n, func(v types.ModelVote) (types.ComplexityClass, float64) {
		return v.PredictedSpace, v.SpaceProbability
	})

	agreement := &types.ModelAgreement{
		TimePredictions:  make(map[string]int, len(timeCounts)),
		SpacePredictions: make(map[string]int, len(spaceCounts)),
	}
	for class, count := range timeCounts {
		agreement.TimePredictions[class.String()] = count
	}
	for class, count := range spaceCounts {
		agreement.SpacePredictions[class.String()] = count
	}

	v := types.Verdict{
		Time:       timeWinner,
		Space:      spaceWinner,
		Confidence: timeConf,
		Source:     types.SourceEnsemble,
		Breakdown: []string{
			fmt.Sprintf("ensemble of %d models: %d voted %s for time (confidence %.2f)",
				n, timeCounts[timeWinner], timeWinner, timeConf),
			fmt.Sprintf("%d voted %s for space (confidence %.2f)",
				spaceCounts[spaceWinner], spaceWinner, spaceConf),
		},
	}
	return v, agreement, nil
}

// plurality picks the most voted class; ties break toward the lower
// class in the total order.
func plurality(counts map[types.ComplexityClass]int) types.ComplexityClass {
	winner := types.ComplexityClass(-1)
	best := 0
	for class, count := range counts {
		if count > best || (count == best && (winner < 0 || class < winner)) {
			winner = class
			best = count
		}
	}
	return winner
}

// axisConfidence is (winner votes / N) * mean probability of the
// voters that agreed with the winner.
func axisConfidence(votes []types.ModelVote, winner types.ComplexityClass, n int, axis func(types.ModelVote) (types.ComplexityClass, float64)) float64 {
	var agreeing int
	var probSum float64
	for _, v := range votes {
		class, prob := axis(v)
		if class == winner {
			agreeing++
			probSum += prob
		}
	}
	if agreeing == 0 {
		return 0
	}
	return (float64(agreeing) / float64(n)) * (probSum / float64(agreeing))
}
