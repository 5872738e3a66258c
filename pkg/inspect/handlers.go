package inspect

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/viewcore/internal/errors"
	"github.com/vango-dev/viewcore/pkg/protocol"
	"github.com/vango-dev/viewcore/pkg/view"
)

// maxEventBody caps a POST /event body.
const maxEventBody = 64 << 10

// EventRequest is the body of POST /event.
type EventRequest struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// errorResponse is the body of every error reply. Details carries the
// coded error when there is one.
type errorResponse struct {
	Error   string            `json:"error"`
	Details *errors.CoreError `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("response write failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	stderrors.As(err, &resp.Details)
	s.writeJSON(w, status, resp)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.host.Tree())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.host.Stats())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBody)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("VC031").Wrap(err))
		return
	}
	path, err := view.ParsePath(req.Path)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("VC031").Wrap(err))
		return
	}
	kind, err := protocol.ParseEventKind(req.Kind)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("VC031").Wrap(err))
		return
	}

	ev := &protocol.Event{Kind: kind, Path: path}
	switch kind {
	case protocol.EventInput:
		ev.Value = req.Value
	case protocol.EventCustom:
		ev.Payload = []byte(req.Value)
	}
	if err := s.host.Send(path, ev.Message()); err != nil {
		s.writeError(w, sendStatus(err), err)
		return
	}
	s.logger.Debug("event queued", "path", path.String(), "kind", kind.String())
	w.WriteHeader(http.StatusAccepted)
}

// sendStatus maps a refused message to an HTTP status.
func sendStatus(err error) int {
	switch errors.Code(err) {
	case "VC011":
		return http.StatusServiceUnavailable
	case "VC010":
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no snapshot store configured"})
		return false
	}
	return true
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("snapshot list failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"snapshots": names})
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	data, err := json.Marshal(s.host.Tree())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	name := SnapshotName(s.name, data)
	if err := s.store.Save(r.Context(), name, data); err != nil {
		s.logger.Error("snapshot save failed", "name", name, "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("snapshot saved", "name", name, "bytes", len(data))
	s.writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	name := chi.URLParam(r, "name")
	if !ValidSnapshotName(name) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid snapshot name"})
		return
	}
	data, err := s.store.Load(r.Context(), name)
	if err != nil {
		if stderrors.Is(err, ErrSnapshotNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
