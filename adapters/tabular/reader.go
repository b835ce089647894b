// Package tabular reads CSV and XLSX datasets into numeric tables. Cells
// that fail numeric coercion become NaN and are counted as missing; a
// column with no numeric cells at all is set aside with a reason instead
// of silently poisoning downstream statistics.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gomonte/domain/table"
	"gomonte/internal/errors"
)

// Reader implements ports.TableReaderPort with extension dispatch.
type Reader struct {
	sheet string
}

// NewReader creates a reader. XLSX files are read from the given sheet;
// empty means Sheet1.
func NewReader(sheet string) *Reader {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Reader{sheet: sheet}
}

// Read loads the dataset at path. The extension selects the format:
// .csv or .xlsx, anything else is an error.
func (r *Reader) Read(ctx context.Context, path string) (*table.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("dataset file %s", path))
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = r.readXLSX(path)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported dataset extension %q, expected .csv or .xlsx", ext))
	}
	if err != nil {
		return nil, err
	}
	return buildTable(rows)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", path)
	}
	defer file.Close()

	// encoding/csv enforces a uniform field count, so a ragged file
	// surfaces here as a parse error with a line number.
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.DataFormat(fmt.Sprintf("failed to parse CSV file %s", path), err)
	}
	return rows, nil
}

func (r *Reader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.DataFormat(fmt.Sprintf("failed to open Excel file %s", path), err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.DataFormat(fmt.Sprintf("failed to read sheet %s of %s", r.sheet, path), err)
	}
	return rows, nil
}

// buildTable coerces raw string rows into numeric columns.
func buildTable(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, errors.DataFormat("dataset file is empty", nil)
	}
	if len(rows) == 1 {
		return nil, errors.DataFormat("dataset has a header row but no data rows", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	dataRows := rows[1:]
	t := &table.Table{Headers: headers, Rows: len(dataRows)}

	for j, name := range headers {
		values := make([]float64, len(dataRows))
		missing := 0
		parsed := 0
		for i, row := range dataRows {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			v, err := strconv.ParseFloat(cell, 64)
			if cell == "" || err != nil {
				values[i] = math.NaN()
				missing++
				continue
			}
			values[i] = v
			parsed++
		}

		if parsed == 0 {
			t.Rejected = append(t.Rejected, table.RejectedColumn{
				Name:   name,
				Reason: fmt.Sprintf("no numeric values in %d cells", len(dataRows)),
			})
			continue
		}
		t.Columns = append(t.Columns, table.Column{Name: name, Values: values, Missing: missing})
	}

	if len(t.Columns) == 0 {
		return nil, errors.DataFormat("dataset has no numeric columns", nil)
	}
	return t, nil
}
