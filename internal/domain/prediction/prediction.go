package prediction

import (
	"churn-shield/internal/domain/feature"
	"context"
	"time"
)

const (
	LabelYes = "Yes"
	LabelNo  = "No"

	MessageWillChurn = "Yes, the customer will terminate the service."
	MessageWillStay  = "No, the customer is happy with Telco Services."
)

// Model is one loaded generation of the classifier. It scales numeric
// columns the way it expects them, and PredictProba returns the
// positive-class probability for every row of m, in order.
type Model interface {
	feature.Scaler
	PredictProba(ctx context.Context, m feature.Matrix) ([]float64, error)
	Threshold() float64
}

// Predictor hands out the model to use for one request. Everything a
// request needs is read from a single Current call, so a reload in flight
// cannot mix generations.
type Predictor interface {
	Current() (Model, error)
}

type OnlineResult struct {
	WillChurn        bool    `json:"willChurn"`
	ChurnProbability float64 `json:"churnProbability"`
	Confidence       float64 `json:"confidence"`
	ConfidenceText   string  `json:"confidenceText"`
	Message          string  `json:"message"`
}

type Row struct {
	CustomerID  string `json:"customerId"`
	WillChurn   string `json:"willChurn"`
	Probability string `json:"probability"`
	Reason      string `json:"reason"`
}

type BatchResult struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Rows      []Row     `json:"rows"`
	Summary   Summary   `json:"summary"`
}

// ResultStore keeps batch results for download. Get returns
// apperrors.ErrNotFound for unknown or expired ids.
type ResultStore interface {
	Save(ctx context.Context, r *BatchResult, ttl time.Duration) error
	Get(ctx context.Context, id string) (*BatchResult, error)
}
