package feature

import (
	"churn-shield/internal/pkg/apperrors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one customer's raw input before encoding.
type Record struct {
	CustomerID       string
	SeniorCitizen    string
	Dependents       string
	Tenure           float64
	PhoneService     string
	MultipleLines    string
	InternetService  string
	OnlineSecurity   string
	OnlineBackup     string
	TechSupport      string
	StreamingTV      string
	StreamingMovies  string
	Contract         string
	PaperlessBilling string
	PaymentMethod    string
	MonthlyCharges   float64
	TotalCharges     float64
}

// Batch is the unit of one prediction request. HasCustomerID is set when
// the source carried an identifier column.
type Batch struct {
	Records       []Record
	HasCustomerID bool
}

// Text returns the raw string value of a binary or categorical field.
func (r Record) Text(field string) (string, bool) {
	switch field {
	case FieldCustomerID:
		return r.CustomerID, true
	case FieldSeniorCitizen:
		return r.SeniorCitizen, true
	case FieldDependents:
		return r.Dependents, true
	case FieldPhoneService:
		return r.PhoneService, true
	case FieldMultipleLines:
		return r.MultipleLines, true
	case FieldInternetService:
		return r.InternetService, true
	case FieldOnlineSecurity:
		return r.OnlineSecurity, true
	case FieldOnlineBackup:
		return r.OnlineBackup, true
	case FieldTechSupport:
		return r.TechSupport, true
	case FieldStreamingTV:
		return r.StreamingTV, true
	case FieldStreamingMovies:
		return r.StreamingMovies, true
	case FieldContract:
		return r.Contract, true
	case FieldPaperlessBilling:
		return r.PaperlessBilling, true
	case FieldPaymentMethod:
		return r.PaymentMethod, true
	}
	return "", false
}

// Number returns the raw value of a numeric field.
func (r Record) Number(field string) (float64, bool) {
	switch field {
	case FieldTenure:
		return r.Tenure, true
	case FieldMonthlyCharges:
		return r.MonthlyCharges, true
	case FieldTotalCharges:
		return r.TotalCharges, true
	}
	return 0, false
}

// ValidateColumns checks an upload header against the batch contract. The
// header order is irrelevant.
func ValidateColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredUploadColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &apperrors.MissingColumnError{Missing: missing}
	}
	return nil
}

// RecordFromFields builds a Record from one upload row keyed by header name.
// row is zero based and only used for error messages.
func RecordFromFields(row int, fields map[string]string) (Record, error) {
	get := func(name string) string { return strings.TrimSpace(fields[name]) }

	rec := Record{
		CustomerID:       get(FieldCustomerID),
		SeniorCitizen:    get(FieldSeniorCitizen),
		Dependents:       get(FieldDependents),
		PhoneService:     get(FieldPhoneService),
		MultipleLines:    get(FieldMultipleLines),
		InternetService:  get(FieldInternetService),
		OnlineSecurity:   get(FieldOnlineSecurity),
		OnlineBackup:     get(FieldOnlineBackup),
		TechSupport:      get(FieldTechSupport),
		StreamingTV:      get(FieldStreamingTV),
		StreamingMovies:  get(FieldStreamingMovies),
		Contract:         get(FieldContract),
		PaperlessBilling: get(FieldPaperlessBilling),
		PaymentMethod:    get(FieldPaymentMethod),
	}

	targets := map[string]*float64{
		FieldTenure:         &rec.Tenure,
		FieldMonthlyCharges: &rec.MonthlyCharges,
		FieldTotalCharges:   &rec.TotalCharges,
	}
	for _, name := range NumericFields {
		raw := get(name)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Record{}, apperrors.NewValidationError(name, fmt.Sprintf("row %d: %q is not a number", row+1, raw))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, apperrors.NewValidationError(name, fmt.Sprintf("row %d: %q is not a finite number", row+1, raw))
		}
		*targets[name] = v
	}

	return rec, nil
}
