package tabular

import (
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/pkg/apperrors"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FormatOf maps an upload file name to its tabular format.
func FormatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", apperrors.NewValidationError("file", fmt.Sprintf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename)))
}

// ParseUpload reads a header row plus data rows and converts them to a
// feature batch. Columns are matched by name, so their order is free and
// extra columns are ignored.
func ParseUpload(filename string, r io.Reader) (feature.Batch, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return feature.Batch{}, err
	}

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	}
	if err != nil {
		return feature.Batch{}, err
	}
	return toBatch(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, apperrors.NewValidationError("file", fmt.Sprintf("malformed CSV at line %d: %v", perr.Line, perr.Err))
		}
		return nil, fmt.Errorf("failed to read CSV upload: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewValidationError("file", fmt.Sprintf("unreadable XLSX workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("file", "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func toBatch(rows [][]string) (feature.Batch, error) {
	if len(rows) == 0 {
		return feature.Batch{}, apperrors.NewValidationError("file", "upload is empty, a header row is required")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if err := feature.ValidateColumns(header); err != nil {
		return feature.Batch{}, err
	}

	batch := feature.Batch{HasCustomerID: true}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		rec, err := feature.RecordFromFields(len(batch.Records), fields)
		if err != nil {
			return feature.Batch{}, err
		}
		batch.Records = append(batch.Records, rec)
	}

	if len(batch.Records) == 0 {
		return feature.Batch{}, apperrors.NewValidationError("file", "upload has a header but no data rows")
	}
	return batch, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
