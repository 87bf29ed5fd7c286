package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fieldmark/designer/internal/migrate"
	"github.com/fieldmark/designer/internal/schema"
	"github.com/fieldmark/designer/internal/uispec"
	"github.com/fieldmark/designer/internal/web/response"
)

type fieldType struct {
	Name      string `json:"name"`
	Namespace string `json:"component_namespace"`
	Component string `json:"component_name"`
	Returns   string `json:"type_returned"`
}

// validate checks a notebook file against the notebook schema
func (a *API) validate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		response.RenderError(w, err)
		return
	}
	if err := schema.ValidateBytes(body); err != nil {
		response.RenderError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// migrate returns a notebook file brought up to the current format
func (a *API) migrate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		response.RenderError(w, err)
		return
	}
	nb, err := migrate.Bytes(body)
	if err != nil {
		response.RenderError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nb)
}

func (a *API) fieldTypes(w http.ResponseWriter, r *http.Request) {
	reg := a.sessions.Engine().Registry()
	out := make([]fieldType, 0)
	for _, name := range reg.Names() {
		t, ok := reg.Get(name)
		if !ok {
			continue
		}
		out = append(out, fieldType{
			Name:      name,
			Namespace: t.Prototype.ComponentNamespace,
			Component: t.Prototype.ComponentName,
			Returns:   t.Prototype.TypeReturned,
		})
	}
	response.JSON(w, http.StatusOK, out)
}

func (a *API) operationNames(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, uispec.OperationNames())
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

// decodeJSON decodes the request body into v. Malformed bodies are reported
// as uispec.ErrInvalid so they render as 400.
func decodeJSON(r *http.Request, v interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: request body is empty", uispec.ErrInvalid)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", uispec.ErrInvalid, err)
	}
	return nil
}
