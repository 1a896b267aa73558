package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/wire"
)

const maxBodyBytes = 1 << 20

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", common.ErrInvalidBody, err)
	}
	return nil
}

func statusFor(msg string) int {
	switch msg {
	case wire.MsgUnauthorised, wire.MsgInvalidJWT, wire.MsgExpiredJWT:
		return http.StatusUnauthorized
	case wire.MsgInvalidBody, wire.MsgAddressMismatched, wire.MsgItemOrderNotFound:
		return http.StatusBadRequest
	case wire.MsgItemNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeData(w http.ResponseWriter, r *http.Request, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: encode response: %v", common.ErrorInternal, err))
		return
	}
	s.writeEnvelope(w, r, http.StatusOK, wire.Envelope{Status: wire.StatusSuccess, Data: raw})
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	msg := wire.MessageFor(err)
	status := statusFor(msg)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "error", err)
	}
	s.writeEnvelope(w, r, status, wire.Envelope{Status: wire.StatusError, Message: msg})
}

func (s *HTTPServer) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, env wire.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Warn(r.Context(), "write response", "error", err)
	}
}
