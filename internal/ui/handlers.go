package ui

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/cubeql/internal/engine"
	"github.com/leapstack-labs/cubeql/pkg/core"
)

// handlers provides the JSON API handlers.
type handlers struct {
	engine *engine.Engine
	logger *slog.Logger
}

func newHandlers(eng *engine.Engine, logger *slog.Logger) *handlers {
	return &handlers{engine: eng, logger: logger}
}

func (h *handlers) routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", h.getGraph)

		r.Get("/cubes", h.listCubes)
		r.Post("/cubes", h.createCube)
		r.Patch("/cubes/{name}", h.updateCube)
		r.Delete("/cubes/{name}", h.deleteCube)

		r.Get("/relations", h.listRelations)
		r.Post("/relations", h.createRelation)
		r.Patch("/relations/{id}", h.updateRelation)
		r.Delete("/relations/{id}", h.deleteRelation)

		r.Post("/sql", h.generateSQL)
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the core error taxonomy onto HTTP status codes.
func (h *handlers) respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest

	var (
		dup     *core.DuplicateCubeError
		unknown *core.UnknownCubeError
	)
	switch {
	case errors.As(err, &dup):
		status = http.StatusConflict
	case errors.As(err, &unknown):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *handlers) getGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Model().GraphData())
}

type cubePayload struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

func (h *handlers) listCubes(w http.ResponseWriter, r *http.Request) {
	cubes := h.engine.Model().Cubes()
	out := make([]cubePayload, 0, len(cubes))
	for _, cube := range cubes {
		out = append(out, cubePayload{Name: cube.Name, Columns: cube.Columns})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *handlers) createCube(w http.ResponseWriter, r *http.Request) {
	var payload cubePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if payload.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "cube name is required"})
		return
	}

	cube, err := h.engine.CreateCube(payload.Name, payload.Columns)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cubePayload{Name: cube.Name, Columns: cube.Columns})
}

type cubeUpdatePayload struct {
	Name    *string  `json:"name"`
	Columns []string `json:"columns"`
}

func (h *handlers) updateCube(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var payload cubeUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if payload.Name != nil && *payload.Name != name {
		if err := h.engine.RenameCube(name, *payload.Name); err != nil {
			h.respondError(w, err)
			return
		}
		name = *payload.Name
	}
	if payload.Columns != nil {
		if err := h.engine.UpdateCubeColumns(name, payload.Columns); err != nil {
			h.respondError(w, err)
			return
		}
	}

	cube, ok := h.engine.Model().GetCube(name)
	if !ok {
		h.respondError(w, &core.UnknownCubeError{Name: name})
		return
	}
	respondJSON(w, http.StatusOK, cubePayload{Name: cube.Name, Columns: cube.Columns})
}

func (h *handlers) deleteCube(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	removed, err := h.engine.DeleteCube(name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !removed {
		h.respondError(w, &core.UnknownCubeError{Name: name})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type relationPayload struct {
	ID          string `json:"id,omitempty"`
	Left        string `json:"left"`
	Right       string `json:"right"`
	LeftColumn  string `json:"left_column"`
	RightColumn string `json:"right_column"`
	Cardinality string `json:"cardinality"`
}

func (h *handlers) listRelations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.engine.ListRelations()
	if err != nil {
		h.respondError(w, err)
		return
	}
	out := make([]relationPayload, 0, len(rows))
	for _, row := range rows {
		out = append(out, relationPayload{
			ID:          row.ID,
			Left:        row.LeftCube,
			Right:       row.RightCube,
			LeftColumn:  row.LeftColumn,
			RightColumn: row.RightColumn,
			Cardinality: string(row.Cardinality),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *handlers) createRelation(w http.ResponseWriter, r *http.Request) {
	var payload relationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cardinality := core.OneToMany
	if payload.Cardinality != "" {
		var err error
		cardinality, err = core.ParseCardinality(payload.Cardinality)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	id, err := h.engine.CreateRelation(payload.Left, payload.Right, payload.LeftColumn, payload.RightColumn, cardinality)
	if err != nil {
		h.respondError(w, err)
		return
	}
	payload.ID = id
	payload.Cardinality = string(cardinality)
	respondJSON(w, http.StatusCreated, payload)
}

type relationUpdatePayload struct {
	LeftColumn  string `json:"left_column"`
	RightColumn string `json:"right_column"`
	Cardinality string `json:"cardinality"`
}

func (h *handlers) updateRelation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload relationUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	upd := core.RelationUpdate{
		LeftColumn:  payload.LeftColumn,
		RightColumn: payload.RightColumn,
	}
	if payload.Cardinality != "" {
		cardinality, err := core.ParseCardinality(payload.Cardinality)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		upd.Cardinality = cardinality
	}

	if err := h.engine.UpdateRelation(id, upd); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteRelation(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteRelation(chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sqlRequest struct {
	Columns []string `json:"columns"`
}

type sqlResponse struct {
	Start string      `json:"start"`
	Joins []core.Join `json:"joins"`
	SQL   string      `json:"sql"`
}

func (h *handlers) generateSQL(w http.ResponseWriter, r *http.Request) {
	var payload sqlRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	model := h.engine.Model()
	plan, err := model.Plan(payload.Columns)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sqlResponse{
		Start: plan.Start,
		Joins: plan.Joins,
		SQL:   model.RenderSQL(plan, payload.Columns),
	})
}
