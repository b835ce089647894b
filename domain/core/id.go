package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RunID        ID
	ExperimentID ID
	SeriesKey    ID
)

// String conversions for domain IDs
func (id RunID) String() string        { return ID(id).String() }
func (id ExperimentID) String() string { return ID(id).String() }
func (k SeriesKey) String() string     { return ID(k).String() }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseExperimentID parses a string into ExperimentID
func ParseExperimentID(s string) (ExperimentID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("experiment ID cannot be empty")
	}
	return ExperimentID(s), nil
}

// ParseSeriesKey parses a string into SeriesKey
func ParseSeriesKey(s string) (SeriesKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("series key cannot be empty")
	}
	return SeriesKey(s), nil
}

// Artifact represents any output of a lab run
type Artifact struct {
	ID        ID           `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Payload   interface{}  `json:"payload"`
	CreatedAt Timestamp    `json:"created_at"`
}

// ArtifactKind defines types of artifacts
type ArtifactKind string

const (
	// ArtifactConvergencePath is the running-mean trace of a law-of-large-numbers run.
	ArtifactConvergencePath ArtifactKind = "convergence_path"
	// ArtifactSamplingDistribution holds the replicate sample means for one sample size.
	ArtifactSamplingDistribution ArtifactKind = "sampling_distribution"
	// ArtifactNormalityCheck records the CLT verdict on a sampling distribution.
	ArtifactNormalityCheck ArtifactKind = "normality_check"
	// ArtifactIntegralEstimate is a single Monte Carlo integral with its error bounds.
	ArtifactIntegralEstimate ArtifactKind = "integral_estimate"
	// ArtifactErrorScaling holds RMS error per sample size plus the fitted log-log slope.
	ArtifactErrorScaling ArtifactKind = "error_scaling"
	// ArtifactSummary is a descriptive summary of a single numeric series.
	ArtifactSummary ArtifactKind = "summary"
	// ArtifactHistogram is an equal-width binned view of a series.
	ArtifactHistogram ArtifactKind = "histogram"
	// ArtifactRunManifest captures audit metadata for a run (seed, counts, fingerprint).
	ArtifactRunManifest ArtifactKind = "run_manifest"
)
