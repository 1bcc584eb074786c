package feature

import "strings"

// Raw input field names, as they appear in form posts and upload headers.
const (
	FieldCustomerID       = "customerID"
	FieldSeniorCitizen    = "SeniorCitizen"
	FieldDependents       = "Dependents"
	FieldTenure           = "tenure"
	FieldPhoneService     = "PhoneService"
	FieldMultipleLines    = "MultipleLines"
	FieldInternetService  = "InternetService"
	FieldOnlineSecurity   = "OnlineSecurity"
	FieldOnlineBackup     = "OnlineBackup"
	FieldTechSupport      = "TechSupport"
	FieldStreamingTV      = "StreamingTV"
	FieldStreamingMovies  = "StreamingMovies"
	FieldContract         = "Contract"
	FieldPaperlessBilling = "PaperlessBilling"
	FieldPaymentMethod    = "PaymentMethod"
	FieldMonthlyCharges   = "MonthlyCharges"
	FieldTotalCharges     = "TotalCharges"
)

const (
	LevelYes               = "Yes"
	LevelNo                = "No"
	LevelNoPhoneService    = "No phone service"
	LevelNoInternetService = "No internet service"
	LevelDSL               = "DSL"
	LevelFiberOptic        = "Fiber optic"
	LevelMonthToMonth      = "Month-to-month"
	LevelOneYear           = "One year"
	LevelTwoYear           = "Two year"
	LevelElectronicCheck   = "Electronic check"
	LevelMailedCheck       = "Mailed check"
	LevelBankTransfer      = "Bank transfer (automatic)"
	LevelCreditCard        = "Credit card (automatic)"
)

type columnKind int

const (
	kindBinary columnKind = iota
	kindNumeric
	kindIndicator
)

type column struct {
	name  string
	kind  columnKind
	field string
	level string
}

func binaryColumn(field string) column  { return column{name: field, kind: kindBinary, field: field} }
func numericColumn(field string) column { return column{name: field, kind: kindNumeric, field: field} }

func indicatorColumn(field, level string) column {
	return column{
		name:  IndicatorName(field, level),
		kind:  kindIndicator,
		field: field,
		level: level,
	}
}

// IndicatorName is the model column for one categorical level.
func IndicatorName(field, level string) string {
	return field + "_" + strings.ReplaceAll(level, " ", "_")
}

// The column contract of the trained classifier. Baseline levels have no
// column of their own; their rows carry 0 in every sibling indicator.
var columns = []column{
	binaryColumn(FieldSeniorCitizen),
	binaryColumn(FieldDependents),
	numericColumn(FieldTenure),
	binaryColumn(FieldPhoneService),
	binaryColumn(FieldPaperlessBilling),
	numericColumn(FieldMonthlyCharges),
	numericColumn(FieldTotalCharges),
	indicatorColumn(FieldMultipleLines, LevelNoPhoneService),
	indicatorColumn(FieldMultipleLines, LevelYes),
	indicatorColumn(FieldInternetService, LevelFiberOptic),
	indicatorColumn(FieldInternetService, LevelNo),
	indicatorColumn(FieldOnlineSecurity, LevelNoInternetService),
	indicatorColumn(FieldOnlineSecurity, LevelYes),
	indicatorColumn(FieldOnlineBackup, LevelNoInternetService),
	indicatorColumn(FieldTechSupport, LevelNoInternetService),
	indicatorColumn(FieldTechSupport, LevelYes),
	indicatorColumn(FieldStreamingTV, LevelNoInternetService),
	indicatorColumn(FieldStreamingTV, LevelYes),
	indicatorColumn(FieldStreamingMovies, LevelNoInternetService),
	indicatorColumn(FieldStreamingMovies, LevelYes),
	indicatorColumn(FieldContract, LevelOneYear),
	indicatorColumn(FieldContract, LevelTwoYear),
	indicatorColumn(FieldPaymentMethod, LevelElectronicCheck),
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c.name] = i
	}
	return idx
}()

// BinaryFields are mapped Yes->1, No->0.
var BinaryFields = []string{FieldSeniorCitizen, FieldDependents, FieldPhoneService, FieldPaperlessBilling}

// NumericFields are min-max scaled.
var NumericFields = []string{FieldTenure, FieldMonthlyCharges, FieldTotalCharges}

var yesNo = []string{LevelYes, LevelNo}
var internetAddOn = []string{LevelYes, LevelNo, LevelNoInternetService}

// Domains lists the accepted levels of every categorical field.
var Domains = map[string][]string{
	FieldMultipleLines:   {LevelYes, LevelNo, LevelNoPhoneService},
	FieldInternetService: {LevelDSL, LevelFiberOptic, LevelNo},
	FieldOnlineSecurity:  internetAddOn,
	FieldOnlineBackup:    internetAddOn,
	FieldTechSupport:     internetAddOn,
	FieldStreamingTV:     internetAddOn,
	FieldStreamingMovies: internetAddOn,
	FieldContract:        {LevelMonthToMonth, LevelOneYear, LevelTwoYear},
	FieldPaymentMethod:   {LevelElectronicCheck, LevelMailedCheck, LevelBankTransfer, LevelCreditCard},
}

// CategoricalFields in upload contract order.
var CategoricalFields = []string{
	FieldMultipleLines,
	FieldInternetService,
	FieldOnlineSecurity,
	FieldOnlineBackup,
	FieldTechSupport,
	FieldStreamingTV,
	FieldStreamingMovies,
	FieldContract,
	FieldPaymentMethod,
}

// RequiredUploadColumns is the batch upload contract.
var RequiredUploadColumns = []string{
	FieldCustomerID,
	FieldSeniorCitizen,
	FieldDependents,
	FieldTenure,
	FieldPhoneService,
	FieldMultipleLines,
	FieldInternetService,
	FieldOnlineSecurity,
	FieldOnlineBackup,
	FieldTechSupport,
	FieldStreamingTV,
	FieldStreamingMovies,
	FieldContract,
	FieldPaperlessBilling,
	FieldPaymentMethod,
	FieldMonthlyCharges,
	FieldTotalCharges,
}

// Schema returns a copy of the ordered model column names.
func Schema() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// Width is the number of model columns.
func Width() int {
	return len(columns)
}

// Index returns the position of a model column, or -1.
func Index(name string) int {
	if i, ok := columnIndex[name]; ok {
		return i
	}
	return -1
}
