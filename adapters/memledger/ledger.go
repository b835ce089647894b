// Package memledger is the lab's artifact store: an in-memory, append-only
// ledger keyed by run. Nothing persists beyond the process; a run's
// artifacts can be exported to JSON when the user asks for a file.
package memledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"gomonte/domain/core"
)

// Ledger implements ports.LedgerPort with mutex-guarded in-memory storage.
type Ledger struct {
	mu   sync.RWMutex
	runs map[core.RunID][]core.Artifact
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{runs: make(map[core.RunID][]core.Artifact)}
}

// StoreArtifact appends an artifact to the run's ledger.
func (l *Ledger) StoreArtifact(ctx context.Context, runID core.RunID, artifact core.Artifact) error {
	if runID == "" {
		return fmt.Errorf("ledger: artifact needs a run ID")
	}
	if artifact.ID.IsEmpty() {
		return fmt.Errorf("ledger: artifact needs an ID")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs[runID] = append(l.runs[runID], artifact)
	return nil
}

// ListArtifacts returns the run's artifacts in insertion order.
func (l *Ledger) ListArtifacts(ctx context.Context, runID core.RunID) ([]core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stored, ok := l.runs[runID]
	if !ok {
		return nil, fmt.Errorf("ledger: no artifacts for run %s", runID)
	}
	out := make([]core.Artifact, len(stored))
	copy(out, stored)
	return out, nil
}

// GetArtifactsByKind returns the run's artifacts of one kind, in insertion order.
func (l *Ledger) GetArtifactsByKind(ctx context.Context, runID core.RunID, kind core.ArtifactKind) ([]core.Artifact, error) {
	all, err := l.ListArtifacts(ctx, runID)
	if err != nil {
		return nil, err
	}
	var out []core.Artifact
	for _, a := range all {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListRuns returns every run ID with stored artifacts, sorted.
func (l *Ledger) ListRuns(ctx context.Context) ([]core.RunID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.RunID, 0, len(l.runs))
	for id := range l.runs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ExportJSON writes the run's artifacts as an indented JSON document.
func (l *Ledger) ExportJSON(w io.Writer, runID core.RunID) error {
	artifacts, err := l.ListArtifacts(context.Background(), runID)
	if err != nil {
		return err
	}
	doc := struct {
		RunID     core.RunID      `json:"run_id"`
		Artifacts []core.Artifact `json:"artifacts"`
	}{RunID: runID, Artifacts: artifacts}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
