package dto

type ErrorDetail struct {
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
