package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "lookalike/internal/platform/net"
)

// Envelope is the body shape of every JSON answer
type Envelope = pnet.Wire

// Response is what return style handlers produce.
// An error Body is rendered as an error envelope and Status is ignored.
// Status 0 means 200; 204 writes no body.
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error renders err with the status its code maps to
func Error(err error) Response { return Response{Body: err} }

// Handle turns a Response returning func into a net/http handler
func Handle(h func(*stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		hdr := w.Header()
		for k, vs := range resp.Header {
			hdr[k] = append(hdr[k], vs...)
		}
		status, body, ok := resp.envelope(pnet.RequestID(r.Context()))
		if !ok {
			w.WriteHeader(status)
			return
		}
		hdr.Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// envelope resolves the status and body; ok is false when there is no body
func (resp Response) envelope(reqID string) (int, Envelope, bool) {
	if err, isErr := resp.Body.(error); isErr && err != nil {
		status, env := pnet.Error(err, reqID)
		return status, env, true
	}
	switch resp.Status {
	case 0:
		resp.Status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		return resp.Status, Envelope{}, false
	}
	status, env := pnet.Reply(resp.Status, resp.Body, reqID)
	return status, env, true
}
