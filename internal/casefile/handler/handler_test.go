package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casefile/internal/casefile/reconcile"
	"casefile/internal/casefile/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	today := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	svc := service.New(slog.New(slog.DiscardHandler), nil, today, reconcile.DetailCatalogs{})

	router := chi.NewRouter()
	New(svc, slog.New(slog.DiscardHandler), nil).Register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewCaseEndpoint(t *testing.T) {
	server := newServer(t)

	resp := postJSON(t, server.URL+"/case", map[string]string{"id": "2024-0001"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, server.URL+"/case", map[string]string{"id": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportAndSnapshot(t *testing.T) {
	server := newServer(t)
	postJSON(t, server.URL+"/case", map[string]string{"id": "2024-0001"})

	resp := postJSON(t, server.URL+"/import/products", map[string]any{
		"rows": []map[string]string{
			{"id_producto": "PRD-1", "id_cliente": "CLI-1", "monto_investigado": "100"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var batch struct {
		Created int      `json:"created"`
		Summary []string `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	assert.Equal(t, 1, batch.Created)
	require.NotEmpty(t, batch.Summary)
	assert.Contains(t, batch.Summary[0], "1 new")

	snap, err := http.Get(server.URL + "/case")
	require.NoError(t, err)
	defer snap.Body.Close()
	var kase struct {
		ID       string           `json:"id"`
		Clients  []map[string]any `json:"clients"`
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, json.NewDecoder(snap.Body).Decode(&kase))
	assert.Equal(t, "2024-0001", kase.ID)
	assert.Len(t, kase.Clients, 1)
	assert.Len(t, kase.Products, 1)
}

func TestImportUnknownSection(t *testing.T) {
	server := newServer(t)
	resp := postJSON(t, server.URL+"/import/widgets", map[string]any{
		"rows": []map[string]string{{"id": "X"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateEndpoint(t *testing.T) {
	server := newServer(t)
	postJSON(t, server.URL+"/case", map[string]string{"id": "2024-0001"})

	resp := postJSON(t, server.URL+"/case/validate", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	// An empty case misses its report type, taxonomy, channel and dates.
	assert.NotEmpty(t, report.Errors)
}

func TestInheritEndpoint(t *testing.T) {
	server := newServer(t)
	postJSON(t, server.URL+"/case", map[string]string{"id": "2024-0001"})

	resp := postJSON(t, server.URL+"/case/products/inherit", map[string]string{"product_id": "PRD-404"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	postJSON(t, server.URL+"/import/products", map[string]any{
		"rows": []map[string]string{{"id_producto": "PRD-1"}},
	})
	resp = postJSON(t, server.URL+"/case/products/inherit", map[string]string{"product_id": "PRD-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		MissingFields []string `json:"missing_fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	// The fresh case has no taxonomy or dates to inherit.
	assert.NotEmpty(t, result.MissingFields)
}

func TestRenameEndpoint(t *testing.T) {
	server := newServer(t)
	postJSON(t, server.URL+"/case", map[string]string{"id": "2024-0001"})
	postJSON(t, server.URL+"/import/team", map[string]any{
		"rows": []map[string]string{
			{"id_colaborador": "T12345"},
			{"id_colaborador": "T67890"},
		},
	})

	resp := postJSON(t, server.URL+"/case/rename", map[string]string{
		"section": "team", "from": "T67890", "to": "t12345",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Diagnostic string `json:"diagnostic"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Diagnostic, "already in use")
}
