package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/letshang/internal/server/services"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv  *httptest.Server
	rm   *repomanager.MemoryRepositoryManager
	hang *models.Hang
}

func newFixture(t *testing.T, rm repomanager.RepositoryManager) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	agg := services.NewAggregationService(rm, logging.Nop{})
	share := services.NewShareService(agg, "https://hangs.example/")
	s := NewServer(":0", logging.Nop{}, share, reg, []string{"https://hangs.example"})

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newSeededFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	rm := repomanager.NewMemoryRepositoryManager()
	require.NoError(t, rm.Users().SaveProfile(ctx, &models.User{ID: "u1", Name: "Ann"}))

	h, err := services.NewLifecycleService(rm, logging.Nop{}).Create(ctx, "u1", models.HangFields{
		Title: "Coffee", Date: "2025-06-01", Time: "10:00", Location: "Cafe X", MaxAttendees: 6,
	})
	require.NoError(t, err)

	return &fixture{srv: newFixture(t, rm), rm: rm, hang: h}
}

func TestHealthz(t *testing.T) {
	f := newSeededFixture(t)

	resp, err := http.Get(f.srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestSharePreview(t *testing.T) {
	f := newSeededFixture(t)

	resp, err := http.Get(f.srv.URL + "/share/" + f.hang.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p services.SharePayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "https://hangs.example/?hang="+f.hang.ID, p.URL)
	assert.Contains(t, p.Text, "1/6 people going")
}

func TestSharePreview_NotFound(t *testing.T) {
	f := newSeededFixture(t)

	for _, id := range []string{uuid.NewString(), "garbage"} {
		resp, err := http.Get(f.srv.URL + "/share/" + id)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
	}
}

type brokenManager struct{ repomanager.RepositoryManager }

func (brokenManager) WithSnapshot(context.Context, repomanager.TxFunc) error {
	return errors.New("db error: connection refused")
}

func TestSharePreview_StorageError(t *testing.T) {
	srv := newFixture(t, brokenManager{})

	resp, err := http.Get(srv.URL + "/share/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newSeededFixture(t)

	resp, err := http.Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	f := newSeededFixture(t)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://hangs.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "https://hangs.example", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}
