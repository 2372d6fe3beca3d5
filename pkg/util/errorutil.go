package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Kind identifies one member of the closed failure taxonomy. No other
// failure kind crosses the pipeline boundary to the client.
type Kind string

const (
	KindBadRequest      Kind = "BAD_REQUEST"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindExternalService Kind = "EXTERNAL_SERVICE_ERROR"
	KindInternal        Kind = "INTERNAL_ERROR"
)

var kindStatus = map[Kind]int{
	KindBadRequest:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindExternalService: http.StatusInternalServerError,
	KindInternal:        http.StatusInternalServerError,
}

var kindMessage = map[Kind]string{
	KindBadRequest:      "Bad request.",
	KindUnauthorized:    "Authentication required.",
	KindForbidden:       "Access denied.",
	KindNotFound:        "Resource not found.",
	KindConflict:        "Resource conflict occurred.",
	KindExternalService: "External API request failed.",
	KindInternal:        "A server error occurred.",
}

// APIError standardizes application failures. Detail, when set, is
// rendered as the "error" field of the response envelope.
type APIError struct {
	Kind    Kind
	Message string
	Detail  any
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code fixed by the failure kind.
func (e *APIError) HTTPStatus() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New constructs an APIError of the given kind. An empty message selects
// the kind's default.
func New(kind Kind, message string) *APIError {
	if message == "" {
		message = kindMessage[kind]
	}
	return &APIError{Kind: kind, Message: message}
}

func NewBadRequest(message string) *APIError {
	return New(KindBadRequest, message)
}

func NewUnauthorized(message string) *APIError {
	return New(KindUnauthorized, message)
}

func NewForbidden(message string) *APIError {
	return New(KindForbidden, message)
}

func NewNotFound(message string) *APIError {
	return New(KindNotFound, message)
}

func NewConflict(message string) *APIError {
	return New(KindConflict, message)
}

func NewInternal(err error) *APIError {
	e := New(KindInternal, "")
	e.Err = err
	return e
}

// NewValidation wraps field-level validation errors. The field map is
// surfaced verbatim as the "error" payload.
func NewValidation(fieldErrors map[string][]string) *APIError {
	e := New(KindBadRequest, "Validation error")
	e.Detail = fieldErrors
	return e
}

// maxCaptureLen bounds every text field of a captured upstream exchange.
const maxCaptureLen = 1000

// UpstreamRequest records the outbound side of a failed external call.
type UpstreamRequest struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// UpstreamResponse records what the external service answered.
type UpstreamResponse struct {
	StatusCode int               `json:"status_code"`
	Reason     string            `json:"reason"`
	Headers    map[string]string `json:"headers"`
	Data       string            `json:"data"`
}

// Exchange captures a full request/response pair for operator diagnosis
// of external-service failures.
type Exchange struct {
	Request  UpstreamRequest  `json:"request"`
	Response UpstreamResponse `json:"response"`
}

// NewExternalService builds an ExternalServiceError carrying the captured
// exchange, truncating every text field before it leaves the process.
func NewExternalService(message string, exchange Exchange, err error) *APIError {
	e := New(KindExternalService, message)
	e.Detail = truncateExchange(exchange)
	e.Err = err
	return e
}

// Truncate caps s at maxCaptureLen bytes.
func Truncate(s string) string {
	if len(s) > maxCaptureLen {
		return s[:maxCaptureLen]
	}
	return s
}

func truncateExchange(ex Exchange) Exchange {
	ex.Request.URL = Truncate(ex.Request.URL)
	ex.Request.Method = Truncate(ex.Request.Method)
	ex.Request.Body = Truncate(ex.Request.Body)
	ex.Request.Headers = truncateMap(ex.Request.Headers)
	ex.Response.Reason = Truncate(ex.Response.Reason)
	ex.Response.Data = Truncate(ex.Response.Data)
	ex.Response.Headers = truncateMap(ex.Response.Headers)
	return ex
}

func truncateMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[Truncate(k)] = Truncate(v)
	}
	return out
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		if status >= 500 {
			return KindInternal
		}
		return KindBadRequest
	}
}

// ToAPIError coerces any error into the closed taxonomy. Unclassified
// errors surface as a generic message; the cause stays attached for the
// server-side log only.
func ToAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		e := New(kindForStatus(fiberErr.Code), "")
		e.Err = err
		return e
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("")
	}
	return &APIError{
		Kind:    KindInternal,
		Message: "An unexpected error occurred",
		Err:     err,
	}
}
