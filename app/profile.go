package app

import (
	"context"
	"math"

	"gomonte/domain/core"
	"gomonte/domain/sample"
	"gomonte/internal/describe"
	"gomonte/internal/errors"
)

// ColumnProfile pairs a column name with its full description. It is the
// payload of summary artifacts.
type ColumnProfile struct {
	Column      string               `json:"column"`
	Description describe.Description `json:"description"`
}

// ColumnHistogram pairs a column name with its binned view. It is the
// payload of histogram artifacts.
type ColumnHistogram struct {
	Column    string           `json:"column"`
	Histogram sample.Histogram `json:"histogram"`
}

// ProfileTable loads a dataset and profiles every numeric column, storing
// one summary artifact and one histogram artifact per column. Bin counts
// follow Sturges' rule so they track each column's size.
func (s *LabService) ProfileTable(ctx context.Context, path string) (core.RunID, []core.Artifact, error) {
	if s.reader == nil {
		return "", nil, errors.InternalError("lab service has no table reader")
	}
	tbl, err := s.reader.Read(ctx, path)
	if err != nil {
		return "", nil, err
	}

	headers := tbl.NumericHeaders()
	if len(headers) == 0 {
		return "", nil, errors.DataFormat("dataset has no numeric columns to profile", nil)
	}

	runID := core.RunID(core.NewID())
	var artifacts []core.Artifact
	for _, name := range headers {
		col, err := tbl.Column(name)
		if err != nil {
			return "", nil, errors.WithCode(errors.CodeNotFound, err)
		}
		desc, err := describe.Describe(col)
		if err != nil {
			return "", nil, errors.Wrapf(err, "failed to profile column %q", name)
		}
		clean, _ := col.Clean()
		hist, err := clean.Histogram(sturgesBins(clean.Len()))
		if err != nil {
			return "", nil, errors.Wrapf(err, "failed to bin column %q", name)
		}

		artifacts = append(artifacts,
			newArtifact(core.ArtifactSummary, ColumnProfile{Column: name, Description: desc}),
			newArtifact(core.ArtifactHistogram, ColumnHistogram{Column: name, Histogram: hist}),
		)
	}

	for _, a := range artifacts {
		if err := s.ledger.StoreArtifact(ctx, runID, a); err != nil {
			return "", nil, errors.Wrap(err, "failed to store profile artifact")
		}
	}

	s.logger.Info("profiled %d columns of %s", len(headers), path)
	return runID, artifacts, nil
}

// sturgesBins is Sturges' rule: ceil(log2 n) + 1, at least 1.
func sturgesBins(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
