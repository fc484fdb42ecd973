package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"billex/internal/domain"
	"billex/internal/middleware"
	"billex/internal/parser"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rlErr *parser.RateLimitError
	switch {
	case errors.Is(err, domain.ErrDownloadFailed):
		return http.StatusBadRequest, "DOWNLOAD_FAILED", "failed to download document"
	case errors.Is(err, domain.ErrUnsupportedScheme):
		return http.StatusBadRequest, "UNSUPPORTED_SCHEME", "document URL scheme not supported; use http, https or s3"
	case errors.Is(err, domain.ErrDecodingFailed):
		return http.StatusUnprocessableEntity, "DECODING_FAILED", "document could not be decoded as PDF or image"
	case errors.Is(err, domain.ErrNoJSONFound):
		return http.StatusBadGateway, "NO_JSON_FOUND", "model output contains no JSON"
	case errors.Is(err, domain.ErrMalformedJSON):
		return http.StatusBadGateway, "MALFORMED_JSON", "model output contains malformed JSON"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png, heic"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.As(err, &rlErr):
		return http.StatusTooManyRequests, "MODEL_RATE_LIMITED", "model provider rate limited; retry later"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.RequestIDKey)
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
