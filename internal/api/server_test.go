package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artemdev/ozon-cart-bot/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(tracker *Tracker) *httptest.Server {
	s := NewServer("127.0.0.1:0", tracker, []string{"*"}, testLogger())
	return httptest.NewServer(s.Handler())
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(NewTracker())
	defer server.Close()

	var body map[string]string
	status := getJSON(t, server.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRunStatusReflectsTracker(t *testing.T) {
	tracker := NewTracker()
	server := newTestServer(tracker)
	defer server.Close()

	var snap Snapshot
	getJSON(t, server.URL+"/api/v1/run/status", &snap)
	assert.Equal(t, RunStateIdle, snap.State)

	tracker.StartRun("run-42", 3)
	tracker.StartItem("молоко")

	getJSON(t, server.URL+"/api/v1/run/status", &snap)
	assert.Equal(t, RunStateRunning, snap.State)
	assert.Equal(t, "run-42", snap.RunID)
	assert.Equal(t, 3, snap.TotalItems)
	assert.Equal(t, "молоко", snap.CurrentItem)

	tracker.Record(context.Background(), models.ItemOutcome{
		RunID: "run-42", Item: "молоко", Status: models.StatusAdded, Timestamp: time.Now(),
	})
	tracker.FinishRun()

	getJSON(t, server.URL+"/api/v1/run/status", &snap)
	assert.Equal(t, RunStateFinished, snap.State)
	assert.Empty(t, snap.CurrentItem)
	require.Len(t, snap.Outcomes, 1)
	assert.Equal(t, models.StatusAdded, snap.Outcomes[0].Status)
}

func TestRunOutcomesEmptyIsArray(t *testing.T) {
	server := newTestServer(NewTracker())
	defer server.Close()

	var outcomes []models.ItemOutcome
	status := getJSON(t, server.URL+"/api/v1/run/outcomes", &outcomes)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, outcomes)
}
