package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cubeql/internal/engine"
)

func setupTestHandlers(t *testing.T) (*handlers, chi.Router) {
	t.Helper()
	eng, err := engine.New(engine.Config{
		StatePath: filepath.Join(t.TempDir(), "model.db"),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	h := newHandlers(eng, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.routes(r)
	return h, r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_CubeLifecycle(t *testing.T) {
	_, r := setupTestHandlers(t)

	rec := doJSON(t, r, http.MethodPost, "/api/cubes", cubePayload{
		Name:    "orders",
		Columns: []string{"id", "customer_id"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/cubes", cubePayload{Name: "orders"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/cubes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cubes []cubePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cubes))
	require.Len(t, cubes, 1)
	assert.Equal(t, "orders", cubes[0].Name)

	newName := "sales"
	rec = doJSON(t, r, http.MethodPatch, "/api/cubes/orders", cubeUpdatePayload{Name: &newName})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/cubes/sales", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/cubes/sales", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlers_RelationLifecycle(t *testing.T) {
	_, r := setupTestHandlers(t)

	rec := doJSON(t, r, http.MethodPost, "/api/cubes", cubePayload{
		Name:    "orders",
		Columns: []string{"id", "customer_id"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, r, http.MethodPost, "/api/cubes", cubePayload{
		Name:    "customers",
		Columns: []string{"id", "name"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/relations", relationPayload{
		Left:        "orders",
		Right:       "customers",
		LeftColumn:  "customer_id",
		RightColumn: "id",
		Cardinality: "many-to-one",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created relationPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// Self relations are rejected by the model.
	rec = doJSON(t, r, http.MethodPost, "/api/relations", relationPayload{
		Left:        "orders",
		Right:       "orders",
		LeftColumn:  "id",
		RightColumn: "id",
		Cardinality: "one-to-one",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/relations/"+created.ID, relationUpdatePayload{
		Cardinality: "one-to-one",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/relations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []relationPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "one-to-one", rows[0].Cardinality)

	rec = doJSON(t, r, http.MethodDelete, "/api/relations/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlers_GenerateSQL(t *testing.T) {
	_, r := setupTestHandlers(t)

	for _, cube := range []cubePayload{
		{Name: "orders", Columns: []string{"id", "customer_id", "total"}},
		{Name: "customers", Columns: []string{"id", "name"}},
	} {
		rec := doJSON(t, r, http.MethodPost, "/api/cubes", cube)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := doJSON(t, r, http.MethodPost, "/api/relations", relationPayload{
		Left:        "orders",
		Right:       "customers",
		LeftColumn:  "customer_id",
		RightColumn: "id",
		Cardinality: "many-to-one",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/sql", sqlRequest{
		Columns: []string{"orders.total", "customers.name"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "orders", resp.Start)
	require.Len(t, resp.Joins, 1)
	assert.Contains(t, resp.SQL, "RIGHT JOIN customers ON orders.customer_id = customers.id")

	// Unknown columns surface as a client error.
	rec = doJSON(t, r, http.MethodPost, "/api/sql", sqlRequest{
		Columns: []string{"orders.missing"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_GetGraph(t *testing.T) {
	_, r := setupTestHandlers(t)

	rec := doJSON(t, r, http.MethodPost, "/api/cubes", cubePayload{
		Name:    "orders",
		Columns: []string{"id"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var graph struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Edges []any `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graph))
	require.Len(t, graph.Nodes, 1)
	assert.Equal(t, "orders", graph.Nodes[0].ID)
	assert.Empty(t, graph.Edges)
}
