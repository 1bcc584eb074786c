package tabular

import (
	"bytes"
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/pkg/apperrors"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const validCSV = `customerID,gender,SeniorCitizen,Dependents,tenure,PhoneService,MultipleLines,InternetService,OnlineSecurity,OnlineBackup,TechSupport,StreamingTV,StreamingMovies,Contract,PaperlessBilling,PaymentMethod,MonthlyCharges,TotalCharges
7590-VHVEG,Female,No,No,1,No,No phone service,DSL,No,Yes,No,No,No,Month-to-month,Yes,Electronic check,29.85,29.85
5575-GNVDE,Male,No,No,34,Yes,No,DSL,Yes,No,No,No,No,One year,No,Mailed check,56.95,1889.5
,,,,,,,,,,,,,,,,,
`

func TestParseUpload_CSV(t *testing.T) {
	batch, err := ParseUpload("customers.CSV", strings.NewReader(validCSV))
	require.NoError(t, err)

	assert.True(t, batch.HasCustomerID)
	require.Len(t, batch.Records, 2)
	assert.Equal(t, "7590-VHVEG", batch.Records[0].CustomerID)
	assert.Equal(t, "No phone service", batch.Records[0].MultipleLines)
	assert.Equal(t, 34.0, batch.Records[1].Tenure)
	assert.Equal(t, 1889.5, batch.Records[1].TotalCharges)
}

func TestParseUpload_ColumnOrderIrrelevant(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(validCSV), "\n")[:3]
	var reordered []string
	for _, line := range lines {
		cells := strings.Split(line, ",")
		for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
		reordered = append(reordered, strings.Join(cells, ","))
	}

	a, err := ParseUpload("a.csv", strings.NewReader(validCSV))
	require.NoError(t, err)
	b, err := ParseUpload("b.csv", strings.NewReader(strings.Join(reordered, "\n")))
	require.NoError(t, err)

	assert.Equal(t, a.Records, b.Records)
}

func TestParseUpload_Errors(t *testing.T) {
	t.Run("missing columns are listed", func(t *testing.T) {
		csvData := "customerID,SeniorCitizen\n1,No\n"

		_, err := ParseUpload("x.csv", strings.NewReader(csvData))

		var missing *apperrors.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Contains(t, missing.Missing, "TotalCharges")
		assert.NotContains(t, missing.Missing, "customerID")
	})

	t.Run("blank total charges", func(t *testing.T) {
		bad := strings.Replace(validCSV, "Mailed check,56.95,1889.5", "Mailed check,56.95, ", 1)

		_, err := ParseUpload("x.csv", strings.NewReader(bad))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.ErrorContains(t, err, "row 2")
		assert.ErrorContains(t, err, "TotalCharges")
	})

	t.Run("non-finite tenure", func(t *testing.T) {
		bad := strings.Replace(validCSV, "No,No,34,Yes", "No,No,NaN,Yes", 1)

		_, err := ParseUpload("x.csv", strings.NewReader(bad))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.ErrorContains(t, err, "row 2")
		assert.ErrorContains(t, err, "tenure")
	})

	t.Run("infinite monthly charges", func(t *testing.T) {
		bad := strings.Replace(validCSV, "Electronic check,29.85,29.85", "Electronic check,Inf,29.85", 1)

		_, err := ParseUpload("x.csv", strings.NewReader(bad))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.ErrorContains(t, err, "row 1")
		assert.ErrorContains(t, err, "MonthlyCharges")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ParseUpload("x.json", strings.NewReader("{}"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseUpload("x.csv", strings.NewReader(""))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("header only", func(t *testing.T) {
		header := strings.SplitN(validCSV, "\n", 2)[0]
		_, err := ParseUpload("x.csv", strings.NewReader(header+"\n"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("byte order mark is ignored", func(t *testing.T) {
		_, err := ParseUpload("x.csv", strings.NewReader("\ufeff"+validCSV))
		assert.NoError(t, err)
	})
}

func TestParseUpload_XLSX(t *testing.T) {
	f := excelize.NewFile()
	for r, line := range strings.Split(strings.TrimSpace(validCSV), "\n")[:3] {
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	batch, err := ParseUpload("upload.xlsx", &buf)
	require.NoError(t, err)

	require.Len(t, batch.Records, 2)
	assert.Equal(t, "5575-GNVDE", batch.Records[1].CustomerID)
	assert.Equal(t, 56.95, batch.Records[1].MonthlyCharges)
}

func TestParseUpload_FeedsPipeline(t *testing.T) {
	batch, err := ParseUpload("x.csv", strings.NewReader(validCSV))
	require.NoError(t, err)

	res, err := feature.NewPipeline(nil).Transform(batch)
	require.NoError(t, err)
	assert.Equal(t, []string{"7590-VHVEG", "5575-GNVDE"}, res.CustomerIDs)
	assert.Equal(t, 1.0, res.Matrix[0][feature.Index("MultipleLines_No_phone_service")])
}

var exportRows = []prediction.Row{
	{CustomerID: "A", WillChurn: "Yes", Probability: "90.00%", Reason: "Month-to-month contract, High monthly charges"},
	{CustomerID: "B", WillChurn: "No", Probability: "12.34%", Reason: "Low risk profile"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, exportRows))

	assert.Equal(t,
		"Customer ID,Will Churn?,Probability,Reason\n"+
			"A,Yes,90.00%,\"Month-to-month contract, High monthly charges\"\n"+
			"B,No,12.34%,Low risk profile\n",
		buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, exportRows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{resultSheet}, f.GetSheetList())
	rows, err := f.GetRows(resultSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, []string{"B", "No", "12.34%", "Low risk profile"}, rows[2])
}

func TestExportNaming(t *testing.T) {
	assert.Equal(t, "churn_predictions.csv", FileName(FormatCSV))
	assert.Equal(t, "churn_predictions.xlsx", FileName(FormatXLSX))
	assert.Equal(t, "text/csv", ContentType(FormatCSV))
	assert.Error(t, Write(&bytes.Buffer{}, "pdf", nil))
}
