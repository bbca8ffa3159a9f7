// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/amriddinov-m/panasonic-api/internal/core/id"
)

// DateLayout is the calendar date format accepted by list and report filters.
const DateLayout = "2006-01-02"

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// StatusChangeRequest is the body of POST /{document}/:id/status.
type StatusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- lenient query parsing ---

// ParseDate returns nil for empty or malformed dates. RFC 3339 timestamps are
// accepted and truncated to their date.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

// ParseInt returns def for empty or malformed values.
func ParseInt(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// ParseBool returns nil for empty or malformed values.
func ParseBool(raw string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

// SplitValues flattens repeated and comma separated values, dropping blanks.
func SplitValues(values []string) []string {
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
