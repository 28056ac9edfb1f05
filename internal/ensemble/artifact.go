package ensemble

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"

	bigoerrors "github.com/standardbeagle/bigo/internal/errors"
)

// FormatVersion is the artifact schema version. Loading refuses
// artifacts written for a different vector layout.
const FormatVersion = 1

// artifactGlob selects model files under a models directory.
const artifactGlob = "*.toml"

// Artifact is the on-disk TOML representation of one trained model.
// Family-specific sections are optional; buildModel validates that the
// sections the named family needs are present and well-formed.
type Artifact struct {
	ID            string `toml:"id"`
	Family        string `toml:"family"`
	FormatVersion int    `toml:"format_version"`

	TimeWeights map[string][]float64 `toml:"time_weights,omitempty"`
	TimeBias    map[string]float64   `toml:"time_bias,omitempty"`

	SpaceWeights map[string][]float64 `toml:"space_weights,omitempty"`
	SpaceBias    map[string]float64   `toml:"space_bias,omitempty"`

	TimeRules   []ArtifactRule   `toml:"time_rules,omitempty"`
	TimeDefault *ArtifactDefault `toml:"time_default,omitempty"`

	SpaceRules   []ArtifactRule   `toml:"space_rules,omitempty"`
	SpaceDefault *ArtifactDefault `toml:"space_default,omitempty"`

	TimeCentroids  map[string][]float64 `toml:"time_centroids,omitempty"`
	SpaceCentroids map[string][]float64 `toml:"space_centroids,omitempty"`
}

// ArtifactRule is one threshold stump of a tree-family artifact.
type ArtifactRule struct {
	Feature     int     `toml:"feature"`
	Min         float64 `toml:"min"`
	Class       string  `toml:"class"`
	Probability float64 `toml:"probability"`
}

// ArtifactDefault is the terminal prediction of a tree-family artifact.
type ArtifactDefault struct {
	Class       string  `toml:"class"`
	Probability float64 `toml:"probability"`
}

// artifactSet is an immutable loaded model set. Registry swaps whole
// sets atomically; a set is never mutated after construction.
type artifactSet struct {
	models      []Model
	fingerprint uint64
}

// LoadDir reads every artifact under dir and compiles the model set.
// File order does not matter; models are sorted by ID so the set is
// deterministic regardless of directory listing order. An empty or
// missing directory yields an empty set, which Predict reports as
// unavailable rather than an error.
func LoadDir(dir string) (*artifactSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &artifactSet{}, nil
		}
		return nil, bigoerrors.NewArtifactError(dir, "", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match, err := doublestar.Match(artifactGlob, entry.Name())
		if err != nil {
			return nil, bigoerrors.NewArtifactError(dir, "", err)
		}
		if match {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	set := &artifactSet{}
	digest := xxhash.New()
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, bigoerrors.NewArtifactError(path, "", err)
		}

		var a Artifact
		if err := toml.Unmarshal(data, &a); err != nil {
			return nil, bigoerrors.NewArtifactError(path, "", err)
		}
		if a.ID == "" {
			return nil, bigoerrors.NewArtifactError(path, "", fmt.Errorf("artifact missing id"))
		}
		if a.FormatVersion != FormatVersion {
			return nil, bigoerrors.NewArtifactError(path, a.ID,
				fmt.Errorf("format version %d, want %d", a.FormatVersion, FormatVersion))
		}
		if prev, dup := seen[a.ID]; dup {
			return nil, bigoerrors.NewArtifactError(path, a.ID,
				fmt.Errorf("duplicate model id, already defined in %s", prev))
		}
		seen[a.ID] = path

		model, err := buildModel(&a)
		if err != nil {
			return nil, bigoerrors.NewArtifactError(path, a.ID, err)
		}
		set.models = append(set.models, model)

		// Hash file contents, not mtimes, so a rewrite with identical
		// bytes is recognized as a no-op reload.
		_, _ = digest.Write(data)
	}

	sort.Slice(set.models, func(i, j int) bool { return set.models[i].ID() < set.models[j].ID() })
	set.fingerprint = digest.Sum64()
	return set, nil
}

// compileArtifacts builds a set directly from in-memory artifacts. Used
// for the compiled-in defaults and by tests.
func compileArtifacts(artifacts []Artifact) (*artifactSet, error) {
	set := &artifactSet{}
	for i := range artifacts {
		model, err := buildModel(&artifacts[i])
		if err != nil {
			return nil, err
		}
		set.models = append(set.models, model)
	}
	sort.Slice(set.models, func(i, j int) bool { return set.models[i].ID() < set.models[j].ID() })
	return set, nil
}
