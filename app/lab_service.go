package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"gomonte/domain/core"
	"gomonte/domain/montecarlo"
	"gomonte/domain/sample"
	"gomonte/internal"
	"gomonte/internal/describe"
	"gomonte/internal/errors"
	"gomonte/internal/simulate"
	"gomonte/ports"
)

// LabService orchestrates a lab run: it hands each requested experiment a
// derived random stream, executes them under a bounded worker pool, stores
// one artifact per result in the ledger, and closes the run with a
// manifest and a replayable fingerprint.
type LabService struct {
	ledger  ports.LedgerPort
	rng     ports.RNGPort
	reader  ports.TableReaderPort
	logger  *internal.Logger
	workers int64
	bins    int
}

// NewLabService creates a lab service. workers bounds how many experiments
// run at once; bins is the histogram bin count for sampling distributions.
func NewLabService(ledger ports.LedgerPort, rng ports.RNGPort, reader ports.TableReaderPort, logger *internal.Logger, workers int64, bins int) *LabService {
	if workers < 1 {
		workers = 1
	}
	if bins < 1 {
		bins = simulate.DefaultHistogramBins
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &LabService{ledger: ledger, rng: rng, reader: reader, logger: logger, workers: workers, bins: bins}
}

// SuiteRequest names every experiment one lab run should execute.
type SuiteRequest struct {
	Seed         int64
	RunID        core.RunID // optional, generated when empty
	LLN          []montecarlo.LLNSpec
	Sampling     []montecarlo.SamplingSpec
	Integrations []montecarlo.IntegrateSpec
	Scaling      []montecarlo.ScalingSpec
}

// Empty reports whether the request names no experiments at all.
func (r SuiteRequest) Empty() bool {
	return len(r.LLN) == 0 && len(r.Sampling) == 0 && len(r.Integrations) == 0 && len(r.Scaling) == 0
}

// SuiteResult is the complete output of a lab run.
type SuiteResult struct {
	RunID       core.RunID       `json:"run_id"`
	Artifacts   []core.Artifact  `json:"artifacts"`
	Manifest    core.Artifact    `json:"manifest"`
	Fingerprint core.Fingerprint `json:"fingerprint"`
	RuntimeMs   int64            `json:"runtime_ms"`
}

// suiteJob is one experiment scheduled for execution. Results land at a
// fixed slot so concurrency cannot reorder anything downstream.
type suiteJob struct {
	experiment string
	run        func(ctx context.Context) ([]core.Artifact, []string, error)
}

// RunSuite executes every requested experiment. Experiments run
// concurrently under the worker bound; each one draws from its own derived
// stream, so scheduling order cannot change any result, the artifact
// order, or the fingerprint.
func (s *LabService) RunSuite(ctx context.Context, req SuiteRequest) (*SuiteResult, error) {
	if req.Empty() {
		return nil, errors.InvalidInput("suite request names no experiments")
	}

	startTime := time.Now()
	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}
	s.logger.Info("starting lab run %s with seed %d", runID, req.Seed)

	jobs := s.planJobs(runID, req)

	type slot struct {
		artifacts []core.Artifact
		digests   []string
		err       error
	}
	slots := make([]slot, len(jobs))

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	for i, job := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "lab run cancelled while scheduling")
		}
		wg.Add(1)
		go func(i int, job suiteJob) {
			defer wg.Done()
			defer sem.Release(1)
			artifacts, digests, err := job.run(ctx)
			slots[i] = slot{artifacts: artifacts, digests: digests, err: err}
		}(i, job)
	}
	wg.Wait()

	manifest := montecarlo.NewRunManifest(runID, req.Seed)
	var artifacts []core.Artifact
	var digests []string
	for i, sl := range slots {
		if sl.err != nil {
			return nil, errors.Wrapf(sl.err, "experiment %s failed", jobs[i].experiment)
		}
		for _, a := range sl.artifacts {
			manifest.Record(jobs[i].experiment, a.Kind)
			artifacts = append(artifacts, a)
		}
		digests = append(digests, sl.digests...)
	}

	fingerprint := core.ComputeRunFingerprint(runID, req.Seed, digests)
	manifest.Fingerprint = fingerprint
	manifest.RuntimeMs = time.Since(startTime).Milliseconds()

	manifestArtifact := core.Artifact{
		ID:        core.NewID(),
		Kind:      core.ArtifactRunManifest,
		Payload:   *manifest,
		CreatedAt: core.Now(),
	}

	for _, a := range artifacts {
		if err := s.ledger.StoreArtifact(ctx, runID, a); err != nil {
			return nil, errors.Wrap(err, "failed to store artifact")
		}
	}
	if err := s.ledger.StoreArtifact(ctx, runID, manifestArtifact); err != nil {
		return nil, errors.Wrap(err, "failed to store run manifest")
	}

	s.logger.Info("lab run %s finished: %d artifacts in %dms", runID, len(artifacts)+1, manifest.RuntimeMs)
	return &SuiteResult{
		RunID:       runID,
		Artifacts:   artifacts,
		Manifest:    manifestArtifact,
		Fingerprint: fingerprint,
		RuntimeMs:   manifest.RuntimeMs,
	}, nil
}

// planJobs expands the request into schedulable jobs, one per experiment,
// in declaration order.
func (s *LabService) planJobs(runID core.RunID, req SuiteRequest) []suiteJob {
	var jobs []suiteJob

	for i, spec := range req.LLN {
		key := fmt.Sprintf("%d/%s", i, spec.Population)
		spec := spec
		jobs = append(jobs, suiteJob{
			experiment: "lln/" + key,
			run: func(ctx context.Context) ([]core.Artifact, []string, error) {
				stream, err := s.rng.Stream(ctx, runID.String(), "lln", key, req.Seed)
				if err != nil {
					return nil, nil, err
				}
				path, err := simulate.LLN(stream, spec)
				if err != nil {
					return nil, nil, err
				}
				return []core.Artifact{newArtifact(core.ArtifactConvergencePath, path)}, []string{path.Digest()}, nil
			},
		})
	}

	for i, spec := range req.Sampling {
		key := fmt.Sprintf("%d/%s/n=%d", i, spec.Population, spec.SampleSize)
		spec := spec
		jobs = append(jobs, suiteJob{
			experiment: "sampling/" + key,
			run: func(ctx context.Context) ([]core.Artifact, []string, error) {
				stream, err := s.rng.Stream(ctx, runID.String(), "sampling", key, req.Seed)
				if err != nil {
					return nil, nil, err
				}
				dist, err := simulate.SamplingDistribution(stream, spec, s.bins)
				if err != nil {
					return nil, nil, err
				}
				// The CLT verdict on the replicate means rides along with
				// every sampling distribution.
				check := describe.CheckNormality(sample.New(dist.Means))
				artifacts := []core.Artifact{
					newArtifact(core.ArtifactSamplingDistribution, dist),
					newArtifact(core.ArtifactNormalityCheck, check),
				}
				return artifacts, []string{dist.Digest(), check.Digest()}, nil
			},
		})
	}

	for i, spec := range req.Integrations {
		key := fmt.Sprintf("%d/%s/n=%d", i, spec.Integrand.Name, spec.Samples)
		spec := spec
		jobs = append(jobs, suiteJob{
			experiment: "integrate/" + key,
			run: func(ctx context.Context) ([]core.Artifact, []string, error) {
				stream, err := s.rng.Stream(ctx, runID.String(), "integrate", key, req.Seed)
				if err != nil {
					return nil, nil, err
				}
				est, err := simulate.Integrate(stream, spec)
				if err != nil {
					return nil, nil, err
				}
				return []core.Artifact{newArtifact(core.ArtifactIntegralEstimate, est)}, []string{est.Digest()}, nil
			},
		})
	}

	for i, spec := range req.Scaling {
		key := fmt.Sprintf("%d/%s", i, spec.Integrand.Name)
		spec := spec
		jobs = append(jobs, suiteJob{
			experiment: "scaling/" + key,
			run: func(ctx context.Context) ([]core.Artifact, []string, error) {
				// Every (N, trial) pair gets its own derived stream so the
				// study replays identically regardless of scheduling.
				provider := simulate.StreamProvider(func(subKey string) (*rand.Rand, error) {
					return s.rng.Stream(ctx, runID.String(), "scaling", key+"/"+subKey, req.Seed)
				})
				scaling, err := simulate.ErrorScaling(provider, spec)
				if err != nil {
					return nil, nil, err
				}
				return []core.Artifact{newArtifact(core.ArtifactErrorScaling, scaling)}, []string{scaling.Digest()}, nil
			},
		})
	}

	return jobs
}

func newArtifact(kind core.ArtifactKind, payload interface{}) core.Artifact {
	return core.Artifact{ID: core.NewID(), Kind: kind, Payload: payload, CreatedAt: core.Now()}
}

// RunLLN executes a single law-of-large-numbers experiment.
func (s *LabService) RunLLN(ctx context.Context, seed int64, spec montecarlo.LLNSpec) (montecarlo.ConvergencePath, error) {
	stream, err := s.rng.SeededStream(ctx, "lln", seed)
	if err != nil {
		return montecarlo.ConvergencePath{}, err
	}
	return simulate.LLN(stream, spec)
}

// RunSampling executes a single sampling-distribution experiment and its
// CLT verdict.
func (s *LabService) RunSampling(ctx context.Context, seed int64, spec montecarlo.SamplingSpec) (montecarlo.SamplingDistribution, montecarlo.NormalityCheck, error) {
	stream, err := s.rng.SeededStream(ctx, "sampling", seed)
	if err != nil {
		return montecarlo.SamplingDistribution{}, montecarlo.NormalityCheck{}, err
	}
	dist, err := simulate.SamplingDistribution(stream, spec, s.bins)
	if err != nil {
		return montecarlo.SamplingDistribution{}, montecarlo.NormalityCheck{}, err
	}
	return dist, describe.CheckNormality(sample.New(dist.Means)), nil
}

// RunIntegration executes a single Monte Carlo integral.
func (s *LabService) RunIntegration(ctx context.Context, seed int64, spec montecarlo.IntegrateSpec) (montecarlo.IntegralEstimate, error) {
	stream, err := s.rng.SeededStream(ctx, "integrate", seed)
	if err != nil {
		return montecarlo.IntegralEstimate{}, err
	}
	return simulate.Integrate(stream, spec)
}

// RunScaling executes a single error-scaling study.
func (s *LabService) RunScaling(ctx context.Context, seed int64, spec montecarlo.ScalingSpec) (montecarlo.ErrorScaling, error) {
	provider := simulate.StreamProvider(func(subKey string) (*rand.Rand, error) {
		return s.rng.Stream(ctx, "standalone", "scaling", subKey, seed)
	})
	return simulate.ErrorScaling(provider, spec)
}

// DescribeColumn loads a dataset and profiles one of its columns.
func (s *LabService) DescribeColumn(ctx context.Context, path, column string) (describe.Description, error) {
	if s.reader == nil {
		return describe.Description{}, errors.InternalError("lab service has no table reader")
	}
	tbl, err := s.reader.Read(ctx, path)
	if err != nil {
		return describe.Description{}, err
	}
	col, err := tbl.Column(column)
	if err != nil {
		return describe.Description{}, errors.WithCode(errors.CodeNotFound, err)
	}
	return describe.Describe(col)
}
