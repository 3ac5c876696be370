// Package api defines the JSON request and response shapes of the HTTP API.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message   string            `json:"message"`
	RequestId string            `json:"requestId,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Errors    []ValidationError `json:"errors"`
}
