package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-Id"

// CommandRequest is a command submitted by an operator. Validators may attach
// ValidatorData, which is handed to the handler unchanged.
type CommandRequest struct {
	ID            string
	Command       string
	Data          any
	ValidatorData any

	ctx          context.Context
	responseChan chan<- *CommandResponse
}

type CommandResponse struct {
	err  error
	data any
}

type runCommandRequest struct {
	CommandName string `json:"commandName"`
	Data        any    `json:"data"`
}

type runCommandResponse struct {
	Output any    `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

type adminServer struct {
	log      zerolog.Logger
	commandQ chan<- *CommandRequest
}

func newAdminServer(log zerolog.Logger, commandQ chan<- *CommandRequest) *adminServer {
	return &adminServer{log: log, commandQ: commandQ}
}

// router serves POST /admin/run_command.
func (s *adminServer) router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestIDMiddleware)
	router.Use(s.loggingMiddleware)
	router.
		Methods(http.MethodPost).
		Path("/admin/run_command").
		Name("RunCommand").
		HandlerFunc(s.runCommand)
	return router
}

func (s *adminServer) runCommand(w http.ResponseWriter, r *http.Request) {
	var in runCommandRequest
	err := json.NewDecoder(r.Body).Decode(&in)
	if err != nil {
		writeResponse(w, http.StatusBadRequest, runCommandResponse{Error: "could not decode request: " + err.Error()})
		return
	}

	ctx := r.Context()
	resp := make(chan *CommandResponse, 1)
	select {
	case s.commandQ <- &CommandRequest{
		ID:           w.Header().Get(requestIDHeader),
		Command:      in.CommandName,
		Data:         in.Data,
		ctx:          ctx,
		responseChan: resp,
	}:
	case <-ctx.Done():
		writeResponse(w, http.StatusServiceUnavailable, runCommandResponse{Error: ctx.Err().Error()})
		return
	}

	var response *CommandResponse
	select {
	case response = <-resp:
	case <-ctx.Done():
		writeResponse(w, http.StatusServiceUnavailable, runCommandResponse{Error: ctx.Err().Error()})
		return
	}

	if response.err != nil {
		writeResponse(w, statusCode(response.err), runCommandResponse{Error: response.err.Error()})
		return
	}
	writeResponse(w, http.StatusOK, runCommandResponse{Output: response.data})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return http.StatusNotFound
	case IsInvalidAdminParameterError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeResponse(w http.ResponseWriter, code int, body runCommandResponse) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *adminServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *adminServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		log := s.log.Info()
		if rw.statusCode != http.StatusOK {
			log = s.log.Warn()
		}
		log.Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("request_id", w.Header().Get(requestIDHeader)).
			Str("client_ip", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Int("response_code", rw.statusCode).
			Msg("admin api")
	})
}

// responseWriter captures the response code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
