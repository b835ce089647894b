package ports

import (
	"context"

	"gomonte/domain/table"
)

// TableReaderPort reads a tabular dataset from the local filesystem into a
// typed table. Implementations dispatch on the file extension.
type TableReaderPort interface {
	Read(ctx context.Context, path string) (*table.Table, error)
}
