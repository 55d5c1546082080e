package handler

import "narrabridge/internal/domain"

// Swagger type definitions for API documentation.

// --- Request Types ---

// DispatchRequest represents the dispatch request body.
type DispatchRequest struct {
	Policy string            `json:"policy,omitempty" example:"collect_all"`
	Params DispatchParams    `json:"params"`
	Items  []DispatchItemDoc `json:"items"`
}

// DispatchParams are the batch-wide node parameters.
type DispatchParams struct {
	UseCustomURL       bool     `json:"useCustomUrl" example:"false"`
	CustomURL          string   `json:"customUrl" example:"https://narratheque.example.com"`
	PredefinedURL      string   `json:"predefinedUrl" example:"europe"`
	Token              string   `json:"token" example:"eyJhbGciOi..."`
	BinaryPropertyName string   `json:"binaryPropertyName" example:"data"`
	URLList            []string `json:"urlList"`
	TextContentField   string   `json:"textContentField" example:"body"`
	TextContent        string   `json:"textContent" example:"meeting notes"`
	Filename           string   `json:"filename" example:"notes"`
	InputFieldName     string   `json:"inputFieldName" example:"url"`
}

// DispatchItemDoc is one work item.
type DispatchItemDoc struct {
	JSON   map[string]interface{}             `json:"json"`
	Binary map[string]domain.BinaryAttachment `json:"binary"`
	Params *DispatchParams                    `json:"params,omitempty"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// DispatchErrorBody is the per-item error envelope returned alongside
// partial results.
type DispatchErrorBody struct {
	Success bool        `json:"success" example:"false"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
