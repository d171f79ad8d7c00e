package net

import (
	"net/http"

	perr "lookalike/internal/platform/errors"
)

// Wire is the JSON body of every API answer. Data is set on success,
// Code, Error and Field on failure.
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func head(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// Reply wraps data in a success envelope
func Reply(status int, data any, reqID string) (int, Wire) {
	w := head(status, reqID)
	w.Data = data
	return status, w
}

// Error wraps err in a failure envelope, the status follows its code.
// A nil err is a plain 200.
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return Reply(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	pe := perr.WireFrom(err)

	w := head(status, reqID)
	w.Code, w.Error, w.Field = pe.Code, pe.Message, pe.Field
	return status, w
}
