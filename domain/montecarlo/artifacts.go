package montecarlo

import (
	"fmt"

	"gomonte/domain/core"
	"gomonte/domain/sample"
)

// ConvergencePoint is one checkpoint on a running-mean trace.
type ConvergencePoint struct {
	N           int     `json:"n"`
	RunningMean float64 `json:"running_mean"`
	AbsErr      float64 `json:"abs_err"`
}

// ConvergencePath is the result of a law-of-large-numbers run: the running
// mean observed at each checkpoint, against the analytic population mean.
type ConvergencePath struct {
	Spec        LLNSpec            `json:"spec"`
	Points      []ConvergencePoint `json:"points"`
	FinalMean   float64            `json:"final_mean"`
	TrueMean    float64            `json:"true_mean"`
	FinalAbsErr float64            `json:"final_abs_err"`
}

// Digest folds the result's key numbers into a short string for run
// fingerprinting.
func (c ConvergencePath) Digest() string {
	return fmt.Sprintf("lln:%s:n=%d:mean=%.12g", c.Spec.Population, c.Spec.Draws, c.FinalMean)
}

// SamplingDistribution is the result of a sampling-distribution run: the
// replicate sample means and their spread, against the CLT prediction
// sigma/sqrt(n).
type SamplingDistribution struct {
	Spec              SamplingSpec     `json:"spec"`
	Means             []float64        `json:"means"`
	MeanOfMeans       float64          `json:"mean_of_means"`
	StdError          float64          `json:"std_error"`
	PredictedStdError float64          `json:"predicted_std_error"`
	Histogram         sample.Histogram `json:"histogram"`
}

func (d SamplingDistribution) Digest() string {
	return fmt.Sprintf("sampling:%s:n=%d:reps=%d:se=%.12g",
		d.Spec.Population, d.Spec.SampleSize, d.Spec.Replicates, d.StdError)
}

// NormalityCheck is a verdict on whether a sample is plausibly normal.
type NormalityCheck struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Normal    bool    `json:"normal"`
	Method    string  `json:"method"`
}

func (n NormalityCheck) Digest() string {
	return fmt.Sprintf("normality:%s:normal=%t:p=%.12g", n.Method, n.Normal, n.PValue)
}

// IntegralEstimate is one Monte Carlo integral with its error bounds.
// HalfWidth95 is the CLT-based 95% confidence half-width around Estimate.
// Truth and AbsErr are NaN when the integrand has no analytic value.
type IntegralEstimate struct {
	Spec        IntegrateSpec `json:"spec"`
	Estimate    float64       `json:"estimate"`
	StdError    float64       `json:"std_error"`
	Truth       float64       `json:"truth"`
	AbsErr      float64       `json:"abs_err"`
	HalfWidth95 float64       `json:"half_width_95"`
}

func (e IntegralEstimate) Digest() string {
	return fmt.Sprintf("integral:%s:n=%d:est=%.12g", e.Spec.Integrand.Name, e.Spec.Samples, e.Estimate)
}

// ScalingPoint is the RMS error observed at one sample size.
type ScalingPoint struct {
	N       int     `json:"n"`
	RMSErr  float64 `json:"rms_err"`
	MeanErr float64 `json:"mean_err"`
}

// ErrorScaling is the result of an error-scaling study: RMS error per
// sample size plus the least-squares fit of log RMSE against log N. The CLT
// predicts a slope near -1/2; the artifact records the fitted slope, it
// never asserts it.
type ErrorScaling struct {
	Spec      ScalingSpec    `json:"spec"`
	Points    []ScalingPoint `json:"points"`
	Slope     float64        `json:"slope"`
	Intercept float64        `json:"intercept"`
	R2        float64        `json:"r2"`
}

func (s ErrorScaling) Digest() string {
	return fmt.Sprintf("scaling:%s:sizes=%d:slope=%.12g", s.Spec.Integrand.Name, len(s.Spec.SampleSizes), s.Slope)
}

// RunManifest is the audit record of a complete lab run: what was asked
// for, what came out, and the fingerprint that makes the run replayable.
type RunManifest struct {
	RunID          core.RunID       `json:"run_id"`
	Seed           int64            `json:"seed"`
	Experiments    []string         `json:"experiments"`
	RuntimeMs      int64            `json:"runtime_ms"`
	ArtifactCounts map[string]int   `json:"artifact_counts"`
	Fingerprint    core.Fingerprint `json:"fingerprint"`
	CreatedAt      core.Timestamp   `json:"created_at"`
}

// NewRunManifest starts a manifest for the given run identity.
func NewRunManifest(runID core.RunID, seed int64) *RunManifest {
	return &RunManifest{
		RunID:          runID,
		Seed:           seed,
		ArtifactCounts: make(map[string]int),
		CreatedAt:      core.Now(),
	}
}

// Record notes one executed experiment and its artifact kind.
func (m *RunManifest) Record(experiment string, kind core.ArtifactKind) {
	m.Experiments = append(m.Experiments, experiment)
	m.ArtifactCounts[string(kind)]++
}
