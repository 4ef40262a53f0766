// Package api holds the canonical response envelope all resource services
// resolve into, and the shared normalizer that collapses the backend's
// three response shapes (own envelope, bare payload, empty body) into it.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/sitefront/internal/client"
)

// CodeNetworkError marks failures where no response was received at all.
const CodeNetworkError = "NETWORK_ERROR"

// NoResponseMessage is surfaced for pure network failures, where there is no
// backend payload to dig a message out of.
const NoResponseMessage = "No response received from server. Please check if the backend is running."

type Error struct {
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details,omitempty"`
}

type Envelope[T any] struct {
	Data       T      `json:"data"`
	Error      *Error `json:"error"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Recompute derives HasNext/HasPrev from Page and TotalPages. The backend
// values are not trusted; this runs on every list response.
func (p *Pagination) Recompute() {
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
}

type Paginated[T any] struct {
	Envelope[T]
	Pagination Pagination `json:"pagination"`
}

// Defaults parameterizes the normalizer per call site: the two
// operation-specific messages and the value Data falls back to.
type Defaults[T any] struct {
	SuccessMessage string
	FailureMessage string
	Empty          T
}

// Normalize turns a transport result into the canonical envelope. It never
// returns a Go error: services in the envelope family resolve, always.
func Normalize[T any](resp *client.Response, err error, d Defaults[T]) Envelope[T] {
	if err != nil {
		return Failure(err, d)
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Envelope[T]{
			Data:       d.Empty,
			Success:    true,
			Message:    d.SuccessMessage,
			StatusCode: resp.StatusCode,
		}
	}

	// the backend sometimes wraps payloads itself; trust its envelope
	if hasSuccessKey(body) {
		var env Envelope[T]
		if err := json.Unmarshal(body, &env); err != nil {
			return decodeFailure(resp, err, d)
		}
		if env.StatusCode == 0 {
			env.StatusCode = resp.StatusCode
		}
		return env
	}

	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		return decodeFailure(resp, err, d)
	}

	return Envelope[T]{
		Data:       data,
		Success:    true,
		Message:    d.SuccessMessage,
		StatusCode: resp.StatusCode,
	}
}

// NormalizePage is Normalize for list endpoints. A bare array body gets the
// fallback pagination with Total set from the payload length.
func NormalizePage[E any](resp *client.Response, err error, d Defaults[[]E], fallback Pagination) Paginated[[]E] {
	if err != nil {
		fallback.Recompute()
		return Paginated[[]E]{Envelope: Failure(err, d), Pagination: fallback}
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		fallback.Total = 0
		fallback.TotalPages = 0
		fallback.Recompute()
		return Paginated[[]E]{
			Envelope: Envelope[[]E]{
				Data:       d.Empty,
				Success:    true,
				Message:    d.SuccessMessage,
				StatusCode: resp.StatusCode,
			},
			Pagination: fallback,
		}
	}

	if hasSuccessKey(body) {
		var page Paginated[[]E]
		if err := json.Unmarshal(body, &page); err != nil {
			fallback.Recompute()
			return Paginated[[]E]{Envelope: decodeFailure(resp, err, d), Pagination: fallback}
		}
		if page.StatusCode == 0 {
			page.StatusCode = resp.StatusCode
		}
		if page.Pagination == (Pagination{}) {
			fallback.Total = len(page.Data)
			fallback.TotalPages = 1
			page.Pagination = fallback
		}
		page.Pagination.Recompute()
		return page
	}

	var data []E
	if err := json.Unmarshal(body, &data); err != nil {
		fallback.Recompute()
		return Paginated[[]E]{Envelope: decodeFailure(resp, err, d), Pagination: fallback}
	}

	fallback.Total = len(data)
	fallback.TotalPages = 1
	fallback.Recompute()
	return Paginated[[]E]{
		Envelope: Envelope[[]E]{
			Data:       data,
			Success:    true,
			Message:    d.SuccessMessage,
			StatusCode: resp.StatusCode,
		},
		Pagination: fallback,
	}
}

// Failure builds a failed envelope out of a transport error.
func Failure[T any](err error, d Defaults[T]) Envelope[T] {
	msg := ErrorMessage(err, d.FailureMessage)
	return Envelope[T]{
		Data: d.Empty,
		Error: &Error{
			Message: msg,
			Code:    ErrorCode(err),
			Details: errorDetails(err),
		},
		Success:    false,
		Message:    msg,
		StatusCode: errorStatus(err),
	}
}

// ErrorMessage extracts a human readable message from a transport error:
// the backend body when there is one (string, message/error/details field,
// array joined with commas, or the raw payload), the no-response text when
// the request never got an answer, else the operation fallback.
func ErrorMessage(err error, fallback string) string {
	var se *client.StatusError
	if !errors.As(err, &se) {
		return NoResponseMessage
	}
	if msg := messageFromBody(se.Body); msg != "" {
		return msg
	}
	return fallback
}

// ErrorCode is the HTTP status as a string, or NETWORK_ERROR when no
// response was received.
func ErrorCode(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.StatusCode)
	}
	return CodeNetworkError
}

func errorStatus(err error) int {
	var se *client.StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func errorDetails(err error) json.RawMessage {
	var se *client.StatusError
	if errors.As(err, &se) && json.Valid(se.Body) {
		return json.RawMessage(se.Body)
	}
	return nil
}

func messageFromBody(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error", "details"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var v string
			if err := json.Unmarshal(raw, &v); err == nil && v != "" {
				return v
			}
		}
		// nothing recognizable, keep the whole payload so no diagnostic
		// info gets dropped
		return string(body)
	}

	var items []any
	if err := json.Unmarshal(body, &items); err == nil {
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, fmt.Sprint(it))
		}
		return strings.Join(parts, ", ")
	}

	return string(body)
}

func decodeFailure[T any](resp *client.Response, err error, d Defaults[T]) Envelope[T] {
	msg := fmt.Sprintf("%s: unexpected response format: %s", d.FailureMessage, err)
	return Envelope[T]{
		Data: d.Empty,
		Error: &Error{
			Message: msg,
			Code:    strconv.Itoa(resp.StatusCode),
		},
		Success:    false,
		Message:    msg,
		StatusCode: resp.StatusCode,
	}
}

func hasSuccessKey(body []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	_, ok := probe["success"]
	return ok
}
