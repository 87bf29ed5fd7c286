package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/condition"
	"github.com/fieldmark/designer/internal/migrate"
	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/uispec"
	"github.com/fieldmark/designer/internal/web/response"
)

type sessionBody struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Notebook  *notebook.Notebook `json:"notebook"`
}

type historyBody struct {
	Operations []string `json:"operations"`
	CanUndo    bool     `json:"can_undo"`
	CanRedo    bool     `json:"can_redo"`
}

func (a *API) listSessions(w http.ResponseWriter, r *http.Request) {
	ids := a.sessions.List()
	out := make([]sessionBody, 0, len(ids))
	for _, id := range ids {
		s, err := a.sessions.Get(id)
		if err != nil {
			// closed since List
			continue
		}
		out = append(out, sessionBody{ID: s.ID, CreatedAt: s.CreatedAt})
	}
	response.JSON(w, http.StatusOK, out)
}

// createSession opens a session on the posted notebook, migrating it first.
// An empty body starts a new notebook.
func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		response.RenderError(w, err)
		return
	}

	var nb *notebook.Notebook
	if len(bytes.TrimSpace(body)) > 0 {
		nb, err = migrate.Bytes(body)
		if err != nil {
			response.RenderError(w, err)
			return
		}
	}

	s := a.sessions.Create(nb)
	response.JSON(w, http.StatusCreated, sessionBody{ID: s.ID, CreatedAt: s.CreatedAt, Notebook: s.Notebook()})
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	response.JSON(w, http.StatusOK, sessionBody{ID: s.ID, CreatedAt: s.CreatedAt, Notebook: s.Notebook()})
}

func (a *API) deleteSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	if err := a.sessions.Delete(s.ID); err != nil {
		response.RenderError(w, err)
		return
	}
	if a.hub != nil {
		a.hub.CloseRoom(s.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyOperation decodes an operation envelope and applies it
func (a *API) applyOperation(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)

	var env uispec.Envelope
	if err := decodeJSON(r, &env); err != nil {
		response.RenderError(w, err)
		return
	}

	op, err := env.Decode()
	if err != nil {
		label := env.Type
		if errors.Is(err, uispec.ErrNotFound) {
			// unknown names would grow the label set without bound
			label = "unknown"
		}
		a.metrics.observe(label, err)
		response.RenderError(w, err)
		return
	}

	nb, err := s.Apply(op)
	a.metrics.observe(op.Name(), err)
	if err != nil {
		response.RenderError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nb)
}

func (a *API) undo(w http.ResponseWriter, r *http.Request) {
	a.step(w, sessionFrom(r).Undo)
}

func (a *API) redo(w http.ResponseWriter, r *http.Request) {
	a.step(w, sessionFrom(r).Redo)
}

func (a *API) step(w http.ResponseWriter, move func() (*notebook.Notebook, error)) {
	nb, err := move()
	if err != nil {
		response.RenderError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nb)
}

func (a *API) history(w http.ResponseWriter, r *http.Request) {
	ops, canRedo := sessionFrom(r).History()
	response.JSON(w, http.StatusOK, historyBody{Operations: ops, CanUndo: len(ops) > 0, CanRedo: canRedo})
}

// setMetadata sets one metadata property to the JSON value in the body
func (a *API) setMetadata(w http.ResponseWriter, r *http.Request) {
	var value interface{}
	if err := decodeJSON(r, &value); err != nil {
		response.RenderError(w, err)
		return
	}
	nb, err := sessionFrom(r).SetMetadata(chi.URLParam(r, "key"), value)
	if err != nil {
		response.RenderError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nb)
}

func (a *API) setRoles(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Roles []string `json:"roles"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.RenderError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, sessionFrom(r).UpdateRoles(body.Roles))
}

func (a *API) translateConditions(w http.ResponseWriter, r *http.Request) {
	translations := condition.TranslateAll(sessionFrom(r).Notebook().UISpec)
	if translations == nil {
		translations = []condition.Translation{}
	}
	response.JSON(w, http.StatusOK, translations)
}

func (a *API) integrity(w http.ResponseWriter, r *http.Request) {
	problems := sessionFrom(r).Notebook().UISpec.CheckIntegrity()
	if problems == nil {
		problems = []string{}
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"valid":    len(problems) == 0,
		"problems": problems,
	})
}

func (a *API) export(w http.ResponseWriter, r *http.Request) {
	data, filename, err := sessionFrom(r).Export()
	if err != nil {
		response.RenderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// events upgrades to a websocket streaming the session's changes
func (a *API) events(w http.ResponseWriter, r *http.Request) {
	if a.upgrader == nil {
		response.RenderStatus(w, http.StatusServiceUnavailable, "event streams are disabled")
		return
	}
	s := sessionFrom(r)
	if err := a.upgrader.Subscribe(w, r, s.ID); err != nil {
		a.logger.Debug("event subscription failed", zap.String("session", s.ID), zap.Error(err))
	}
}
