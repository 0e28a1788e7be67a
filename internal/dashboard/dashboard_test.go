package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleStatsReportsCounters(t *testing.T) {
	d := New(7, "ws://127.0.0.1:10000")
	d.MarkConnected()
	d.RecordFetch()
	d.RecordFetch()
	d.RecordProcessed()
	d.RecordNoData()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	d.handleStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ItemsFetched != 2 || got.ItemsProcessed != 1 || got.NoDataCount != 1 {
		t.Fatalf("got %+v, want fetched=2 processed=1 nodata=1", got)
	}
	if got.ClientID != 7 {
		t.Fatalf("ClientID = %d, want 7", got.ClientID)
	}
}

func TestHandleStatsRejectsNonGet(t *testing.T) {
	d := New(0, "")
	req := httptest.NewRequest(http.MethodPost, "/api/stats", nil)
	rec := httptest.NewRecorder()
	d.handleStats(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
