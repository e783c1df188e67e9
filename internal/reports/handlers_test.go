package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avoronkov/stridewell/internal/storage"
	"github.com/avoronkov/stridewell/internal/storage/memory"
)

func newTestHandler(t *testing.T) (*Handler, *memory.Storage) {
	t.Helper()
	store := memory.New()
	service := NewService(store, store, nil, 90, 900, "", false)
	return NewHandler(service), store
}

func seedRecords(t *testing.T, store *memory.Storage) {
	t.Helper()
	days := []string{"2026-08-25", "2026-08-26", "2026-08-27"}
	for i, day := range days {
		recordedAt, _ := time.Parse("2006-01-02", day)
		err := store.InsertRecord(context.Background(), &storage.WellnessRow{
			Name:            "alice",
			RecordedAt:      recordedAt.Add(9 * time.Hour),
			SleepHours:      6 + i,
			Mood:            "happy",
			WaterGlasses:    3,
			ScreenTimeHours: 2.5,
		})
		if err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}
}

func createReport(t *testing.T, handler *Handler, req CreateReportRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, r)
	return w
}

func TestHandleCreateCSV(t *testing.T) {
	handler, store := newTestHandler(t)
	seedRecords(t, store)

	w := createReport(t, handler, CreateReportRequest{
		Name: "alice", From: "2026-08-25", To: "2026-08-27", Format: FormatCSV,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Status != StatusReady {
		t.Errorf("expected status=ready, got %s", report.Status)
	}
	if report.SizeBytes == 0 {
		t.Error("expected non-zero artifact size")
	}

	// Local mode: the artifact downloads from the API itself.
	dr := httptest.NewRequest(http.MethodGet, "/api/reports/"+report.ID.String()+"/download", nil)
	dr.SetPathValue("id", report.ID.String())
	dw := httptest.NewRecorder()
	handler.HandleDownload(dw, dr)

	if dw.Code != http.StatusOK {
		t.Fatalf("download: expected status 200, got %d", dw.Code)
	}
	if ct := dw.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	body := dw.Body.String()
	if !strings.HasPrefix(body, "date,name,sleep_hours,mood,water_glasses,screen_time_hours") {
		t.Errorf("unexpected CSV header: %q", strings.SplitN(body, "\n", 2)[0])
	}
	if !strings.Contains(body, "2026-08-26,alice,7,happy,3,2.50") {
		t.Errorf("CSV missing expected row:\n%s", body)
	}
}

func TestHandleCreatePDF(t *testing.T) {
	handler, store := newTestHandler(t)
	seedRecords(t, store)

	w := createReport(t, handler, CreateReportRequest{
		Name: "alice", From: "2026-08-25", To: "2026-08-27", Format: FormatPDF,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var report Report
	json.NewDecoder(w.Body).Decode(&report)

	dr := httptest.NewRequest(http.MethodGet, "/api/reports/"+report.ID.String()+"/download", nil)
	dr.SetPathValue("id", report.ID.String())
	dw := httptest.NewRecorder()
	handler.HandleDownload(dw, dr)

	if dw.Code != http.StatusOK {
		t.Fatalf("download: expected status 200, got %d", dw.Code)
	}
	if !bytes.HasPrefix(dw.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected PDF magic bytes")
	}
}

func TestHandleCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		req      CreateReportRequest
		wantCode string
	}{
		{
			name:     "missing name",
			req:      CreateReportRequest{From: "2026-08-01", To: "2026-08-10", Format: FormatCSV},
			wantCode: "name_required",
		},
		{
			name:     "bad format",
			req:      CreateReportRequest{Name: "alice", From: "2026-08-01", To: "2026-08-10", Format: "xlsx"},
			wantCode: "invalid_format",
		},
		{
			name:     "bad date",
			req:      CreateReportRequest{Name: "alice", From: "01.08.2026", To: "2026-08-10", Format: FormatCSV},
			wantCode: "invalid_date",
		},
		{
			name:     "inverted range",
			req:      CreateReportRequest{Name: "alice", From: "2026-08-10", To: "2026-08-01", Format: FormatCSV},
			wantCode: "invalid_range",
		},
		{
			name:     "range too large",
			req:      CreateReportRequest{Name: "alice", From: "2026-01-01", To: "2026-12-31", Format: FormatCSV},
			wantCode: "range_too_large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)
			w := createReport(t, handler, tt.req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			var resp ErrorResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Error.Code != tt.wantCode {
				t.Errorf("expected error code %q, got %q", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestHandleListAndDelete(t *testing.T) {
	handler, store := newTestHandler(t)
	seedRecords(t, store)

	w := createReport(t, handler, CreateReportRequest{
		Name: "alice", From: "2026-08-25", To: "2026-08-27", Format: FormatCSV,
	})
	var report Report
	json.NewDecoder(w.Body).Decode(&report)

	lr := httptest.NewRequest(http.MethodGet, "/api/reports?name=alice", nil)
	lw := httptest.NewRecorder()
	handler.HandleList(lw, lr)

	var list ListReportsResponse
	if err := json.NewDecoder(lw.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(list.Reports))
	}

	dr := httptest.NewRequest(http.MethodDelete, "/api/reports/"+report.ID.String(), nil)
	dr.SetPathValue("id", report.ID.String())
	dw := httptest.NewRecorder()
	handler.HandleDelete(dw, dr)

	if dw.Code != http.StatusNoContent {
		t.Fatalf("delete: expected status 204, got %d", dw.Code)
	}

	// Deleting again yields 404.
	dw2 := httptest.NewRecorder()
	dr2 := httptest.NewRequest(http.MethodDelete, "/api/reports/"+report.ID.String(), nil)
	dr2.SetPathValue("id", report.ID.String())
	handler.HandleDelete(dw2, dr2)
	if dw2.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected status 404, got %d", dw2.Code)
	}
}

func TestHandleDownloadURLLocalMode(t *testing.T) {
	handler, store := newTestHandler(t)
	seedRecords(t, store)

	w := createReport(t, handler, CreateReportRequest{
		Name: "alice", From: "2026-08-25", To: "2026-08-27", Format: FormatCSV,
	})
	var report Report
	json.NewDecoder(w.Body).Decode(&report)

	ur := httptest.NewRequest(http.MethodGet, "/api/reports/"+report.ID.String()+"/url", nil)
	ur.Host = "localhost:8080"
	ur.SetPathValue("id", report.ID.String())
	uw := httptest.NewRecorder()
	handler.HandleDownloadURL(uw, ur)

	if uw.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", uw.Code)
	}
	var resp DownloadURLResponse
	json.NewDecoder(uw.Body).Decode(&resp)
	want := "http://localhost:8080/api/reports/" + report.ID.String() + "/download"
	if resp.URL != want {
		t.Errorf("url = %q, want %q", resp.URL, want)
	}
}
