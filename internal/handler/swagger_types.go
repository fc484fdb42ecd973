package handler

import "billex/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ExtractResponseData documents the success payload of extraction endpoints.
type ExtractResponseData struct {
	TokenUsage        domain.TokenUsage      `json:"token_usage"`
	PagewiseLineItems []domain.PageLineItems `json:"pagewise_line_items"`
	TotalItemCount    int                    `json:"total_item_count" example:"17"`
}

// ErrorResponseBody documents the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
