package feature

import (
	"churn-shield/internal/pkg/apperrors"
	"slices"
)

// Vector is one encoded row in Schema order.
type Vector []float64

// Matrix is a batch of encoded rows.
type Matrix []Vector

// NewMatrix allocates a zero-filled matrix for n rows.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make(Vector, len(columns))
	}
	return m
}

// EncodeBinary writes the Yes/No fields into m as 1/0. Any other value is
// rejected with an UnmappedCategoryError.
func EncodeBinary(records []Record, m Matrix) error {
	for i, rec := range records {
		for _, field := range BinaryFields {
			v, _ := rec.Text(field)
			switch v {
			case LevelYes:
				m[i][columnIndex[field]] = 1
			case LevelNo:
				m[i][columnIndex[field]] = 0
			default:
				return &apperrors.UnmappedCategoryError{Row: i, Field: field, Value: v}
			}
		}
	}
	return nil
}

// ExpandCategorical sets every indicator column of m. A level with its own
// column sets that column to 1; baseline levels leave all siblings at 0.
func ExpandCategorical(records []Record, m Matrix) error {
	for i, rec := range records {
		for _, field := range CategoricalFields {
			v, _ := rec.Text(field)
			if !slices.Contains(Domains[field], v) {
				return &apperrors.UnmappedCategoryError{Row: i, Field: field, Value: v}
			}
		}
		for j, c := range columns {
			if c.kind != kindIndicator {
				continue
			}
			v, _ := rec.Text(c.field)
			if v == c.level {
				m[i][j] = 1
			} else {
				m[i][j] = 0
			}
		}
	}
	return nil
}

// DecodeBinary maps an encoded binary value back to its label.
func DecodeBinary(v float64) (string, bool) {
	switch v {
	case 1:
		return yesNo[0], true
	case 0:
		return yesNo[1], true
	}
	return "", false
}
