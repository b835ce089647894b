package ports

import (
	"context"

	"gomonte/domain/core"
)

// LedgerWriterPort provides append-only write access to artifacts.
// This is the only way to write artifacts - prevents read-after-write coupling.
type LedgerWriterPort interface {
	StoreArtifact(ctx context.Context, runID core.RunID, artifact core.Artifact) error
}

// LedgerReaderPort provides read-only access to stored artifacts.
type LedgerReaderPort interface {
	ListArtifacts(ctx context.Context, runID core.RunID) ([]core.Artifact, error)
	GetArtifactsByKind(ctx context.Context, runID core.RunID, kind core.ArtifactKind) ([]core.Artifact, error)
	ListRuns(ctx context.Context) ([]core.RunID, error)
}

// LedgerPort combines read and write access for the lab runner.
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}
