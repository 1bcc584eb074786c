package dto

import (
	"churn-shield/internal/domain/feature"
	"churn-shield/internal/domain/prediction"
	"time"
)

// OnlinePredictionRequest carries one customer's form values. Field names
// match the upload column names.
type OnlinePredictionRequest struct {
	CustomerID       string  `json:"customerID,omitempty"`
	SeniorCitizen    string  `json:"SeniorCitizen" example:"No"`
	Dependents       string  `json:"Dependents" example:"Yes"`
	Tenure           float64 `json:"tenure" example:"12"`
	PhoneService     string  `json:"PhoneService" example:"Yes"`
	MultipleLines    string  `json:"MultipleLines" example:"No"`
	InternetService  string  `json:"InternetService" example:"Fiber optic"`
	OnlineSecurity   string  `json:"OnlineSecurity" example:"No"`
	OnlineBackup     string  `json:"OnlineBackup" example:"No"`
	TechSupport      string  `json:"TechSupport" example:"No"`
	StreamingTV      string  `json:"StreamingTV" example:"No"`
	StreamingMovies  string  `json:"StreamingMovies" example:"No"`
	Contract         string  `json:"Contract" example:"Month-to-month"`
	PaperlessBilling string  `json:"PaperlessBilling" example:"Yes"`
	PaymentMethod    string  `json:"PaymentMethod" example:"Electronic check"`
	MonthlyCharges   float64 `json:"MonthlyCharges" example:"90"`
	TotalCharges     float64 `json:"TotalCharges" example:"90"`
}

func (r *OnlinePredictionRequest) ToRecord() feature.Record {
	return feature.Record{
		CustomerID:       r.CustomerID,
		SeniorCitizen:    r.SeniorCitizen,
		Dependents:       r.Dependents,
		Tenure:           r.Tenure,
		PhoneService:     r.PhoneService,
		MultipleLines:    r.MultipleLines,
		InternetService:  r.InternetService,
		OnlineSecurity:   r.OnlineSecurity,
		OnlineBackup:     r.OnlineBackup,
		TechSupport:      r.TechSupport,
		StreamingTV:      r.StreamingTV,
		StreamingMovies:  r.StreamingMovies,
		Contract:         r.Contract,
		PaperlessBilling: r.PaperlessBilling,
		PaymentMethod:    r.PaymentMethod,
		MonthlyCharges:   r.MonthlyCharges,
		TotalCharges:     r.TotalCharges,
	}
}

type OnlinePredictionResponse struct {
	WillChurn        bool    `json:"willChurn"`
	Label            string  `json:"label"`
	ChurnProbability float64 `json:"churnProbability"`
	Confidence       float64 `json:"confidence"`
	Message          string  `json:"message"`
}

func NewOnlinePredictionResponse(r *prediction.OnlineResult) OnlinePredictionResponse {
	label := prediction.LabelNo
	if r.WillChurn {
		label = prediction.LabelYes
	}
	return OnlinePredictionResponse{
		WillChurn:        r.WillChurn,
		Label:            label,
		ChurnProbability: r.ChurnProbability,
		Confidence:       r.Confidence,
		Message:          r.Message + " Probability: " + r.ConfidenceText,
	}
}

type BatchRowResponse struct {
	CustomerID  string `json:"Customer ID"`
	WillChurn   string `json:"Will Churn?"`
	Probability string `json:"Probability"`
	Reason      string `json:"Reason"`
}

type BatchPredictionResponse struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	Rows        []BatchRowResponse `json:"rows"`
	Summary     prediction.Summary `json:"summary"`
	DownloadURL string             `json:"downloadUrl"`
}

func NewBatchPredictionResponse(r *prediction.BatchResult) BatchPredictionResponse {
	rows := make([]BatchRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = BatchRowResponse{
			CustomerID:  row.CustomerID,
			WillChurn:   row.WillChurn,
			Probability: row.Probability,
			Reason:      row.Reason,
		}
	}
	return BatchPredictionResponse{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Rows:        rows,
		Summary:     r.Summary,
		DownloadURL: "/predictions/batch/" + r.ID + "/download",
	}
}
