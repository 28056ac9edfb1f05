package ensemble

import (
	"fmt"
	"math"

	"github.com/standardbeagle/bigo/internal/types"
)

// Model family names accepted in artifacts.
const (
	FamilyLinear   = "linear"
	FamilyTree     = "tree"
	FamilyCentroid = "centroid"
)

// Model is one ensemble member. Vote must be deterministic and safe for
// concurrent use; models are shared across requests after load.
type Model interface {
	ID() string
	Family() string
	Vote(v Vector) types.ModelVote
}

// prediction pairs a class with the model's probability for it.
type prediction struct {
	class types.ComplexityClass
	prob  float64
}

// --- linear family -------------------------------------------------

// linearModel scores every class with a weight vector plus bias and
// takes the softmax argmax. Weights live per axis.
type linearModel struct {
	id        string
	timeHead  linearHead
	spaceHead linearHead
}

type linearHead struct {
	classes []types.ComplexityClass
	weights [][VectorSize]float64
	biases  []float64
}

func (m *linearModel) ID() string     { return m.id }
func (m *linearModel) Family() string { return FamilyLinear }

func (m *linearModel) Vote(v Vector) types.ModelVote {
	tp := m.timeHead.predict(v)
	sp := m.spaceHead.predict(v)
	return types.ModelVote{
		ModelID:              m.id,
		PredictedTime:        tp.class,
		PredictedProbability: tp.prob,
		PredictedSpace:       sp.class,
		SpaceProbability:     sp.prob,
	}
}

func (h *linearHead) predict(v Vector) prediction {
	scores := make([]float64, len(h.classes))
	best := 0
	for i := range h.classes {
		s := h.biases[i]
		for j := 0; j < VectorSize; j++ {
			s += h.weights[i][j] * v[j]
		}
		scores[i] = s
		if s > scores[best] || (s == scores[best] && h.classes[i] < h.classes[best]) {
			best = i
		}
	}
	return prediction{class: h.classes[best], prob: softmax(scores, best)}
}

// softmax returns the normalized probability of scores[idx], shifted by
// the max score for numeric stability.
func softmax(scores []float64, idx int) float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - max)
	}
	return math.Exp(scores[idx]-max) / sum
}

// --- tree family ---------------------------------------------------

// treeModel is an ordered list of threshold stumps; the first rule
// whose feature clears its threshold wins, else the default fires.
type treeModel struct {
	id        string
	timeHead  treeHead
	spaceHead treeHead
}

type treeRule struct {
	feature int
	min     float64
	class   types.ComplexityClass
	prob    float64
}

type treeHead struct {
	rules        []treeRule
	defaultClass types.ComplexityClass
	defaultProb  float64
}

func (m *treeModel) ID() string     { return m.id }
func (m *treeModel) Family() string { return FamilyTree }

func (m *treeModel) Vote(v Vector) types.ModelVote {
	tp := m.timeHead.predict(v)
	sp := m.spaceHead.predict(v)
	return types.ModelVote{
		ModelID:              m.id,
		PredictedTime:        tp.class,
		PredictedProbability: tp.prob,
		PredictedSpace:       sp.class,
		SpaceProbability:     sp.prob,
	}
}

func (h *treeHead) predict(v Vector) prediction {
	for _, r := range h.rules {
		if v[r.feature] >= r.min {
			return prediction{class: r.class, prob: r.prob}
		}
	}
	return prediction{class: h.defaultClass, prob: h.defaultProb}
}

// --- centroid family -----------------------------------------------

// centroidModel keeps one prototype vector per class and votes for the
// nearest by euclidean distance; probability is the softmin share of
// that distance among all prototypes.
type centroidModel struct {
	id        string
	timeHead  centroidHead
	spaceHead centroidHead
}

type centroidHead struct {
	classes   []types.ComplexityClass
	centroids [][VectorSize]float64
}

func (m *centroidModel) ID() string     { return m.id }
func (m *centroidModel) Family() string { return FamilyCentroid }

func (m *centroidModel) Vote(v Vector) types.ModelVote {
	tp := m.timeHead.predict(v)
	sp := m.spaceHead.predict(v)
	return types.ModelVote{
		ModelID:              m.id,
		PredictedTime:        tp.class,
		PredictedProbability: tp.prob,
		PredictedSpace:       sp.class,
		SpaceProbability:     sp.prob,
	}
}

func (h *centroidHead) predict(v Vector) prediction {
	dists := make([]float64, len(h.classes))
	best := 0
	for i := range h.classes {
		var d float64
		for j := 0; j < VectorSize; j++ {
			diff := v[j] - h.centroids[i][j]
			d += diff * diff
		}
		dists[i] = math.Sqrt(d)
		if dists[i] < dists[best] || (dists[i] == dists[best] && h.classes[i] < h.classes[best]) {
			best = i
		}
	}

	var sum float64
	for _, d := range dists {
		sum += math.Exp(-d)
	}
	return prediction{class: h.classes[best], prob: math.Exp(-dists[best]) / sum}
}

// buildModel compiles one artifact into its runtime model.
func buildModel(a *Artifact) (Model, error) {
	switch a.Family {
	case FamilyLinear:
		timeHead, err := buildLinearHead(a.TimeWeights, a.TimeBias)
		if err != nil {
			return nil, fmt.Errorf("model %s time head: %w", a.ID, err)
		}
		spaceHead, err := buildLinearHead(a.SpaceWeights, a.SpaceBias)
		if err != nil {
			return nil, fmt.Errorf("model %s space head: %w", a.ID, err)
		}
		return &linearModel{id: a.ID, timeHead: timeHead, spaceHead: spaceHead}, nil

	case FamilyTree:
		timeHead, err := buildTreeHead(a.TimeRules, a.TimeDefault)
		if err != nil {
			return nil, fmt.Errorf("model %s time head: %w", a.ID, err)
		}
		spaceHead, err := buildTreeHead(a.SpaceRules, a.SpaceDefault)
		if err != nil {
			return nil, fmt.Errorf("model %s space head: %w", a.ID, err)
		}
		return &treeModel{id: a.ID, timeHead: timeHead, spaceHead: spaceHead}, nil

	case FamilyCentroid:
		timeHead, err := buildCentroidHead(a.TimeCentroids)
		if err != nil {
			return nil, fmt.Errorf("model %s time head: %w", a.ID, err)
		}
		spaceHead, err := buildCentroidHead(a.SpaceCentroids)
		if err != nil {
			return nil, fmt.Errorf("model %s space head: %w", a.ID, err)
		}
		return &centroidModel{id: a.ID, timeHead: timeHead, spaceHead: spaceHead}, nil

	default:
		return nil, fmt.Errorf("model %s: unknown family %q", a.ID, a.Family)
	}
}

func buildLinearHead(weights map[string][]float64, biases map[string]float64) (linearHead, error) {
	if len(weights) < 2 {
		return linearHead{}, fmt.Errorf("linear head needs at least 2 classes, got %d", len(weights))
	}
	var h linearHead
	for _, class := range types.AllClasses() {
		w, ok := weights[class.String()]
		if !ok {
			continue
		}
		if len(w) != VectorSize {
			return linearHead{}, fmt.Errorf("class %s: weight length %d, want %d", class, len(w), VectorSize)
		}
		var row [VectorSize]float64
		copy(row[:], w)
		h.classes = append(h.classes, class)
		h.weights = append(h.weights, row)
		h.biases = append(h.biases, biases[class.String()])
	}
	if len(h.classes) < 2 {
		return linearHead{}, fmt.Errorf("linear head references no known classes")
	}
	return h, nil
}

func buildTreeHead(rules []ArtifactRule, def *ArtifactDefault) (treeHead, error) {
	if def == nil {
		return treeHead{}, fmt.Errorf("tree head missing default")
	}
	defClass, err := types.ParseClass(def.Class)
	if err != nil {
		return treeHead{}, err
	}
	h := treeHead{defaultClass: defClass, defaultProb: def.Probability}
	for i, r := range rules {
		class, err := types.ParseClass(r.Class)
		if err != nil {
			return treeHead{}, fmt.Errorf("rule %d: %w", i, err)
		}
		if r.Feature < 0 || r.Feature >= VectorSize {
			return treeHead{}, fmt.Errorf("rule %d: feature index %d out of range", i, r.Feature)
		}
		h.rules = append(h.rules, treeRule{
			feature: r.Feature,
			min:     r.Min,
			class:   class,
			prob:    r.Probability,
		})
	}
	return h, nil
}

func buildCentroidHead(centroids map[string][]float64) (centroidHead, error) {
	if len(centroids) < 2 {
		return centroidHead{}, fmt.Errorf("centroid head needs at least 2 classes, got %d", len(centroids))
	}
	var h centroidHead
	for _, class := range types.AllClasses() {
		c, ok := centroids[class.String()]
		if !ok {
			continue
		}
		if len(c) != VectorSize {
			return centroidHead{}, fmt.Errorf("class %s: centroid length %d, want %d", class, len(c), VectorSize)
		}
		var row [VectorSize]float64
		copy(row[:], c)
		h.classes = append(h.classes, class)
		h.centroids = append(h.centroids, row)
	}
	if len(h.classes) < 2 {
		return centroidHead{}, fmt.Errorf("centroid head references no known classes")
	}
	return h, nil
}
