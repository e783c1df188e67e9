package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCollectorClientSubmit(t *testing.T) {
	var got WellnessRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/health" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewCollectorClient(srv.URL)
	rec := WellnessRecord{
		Name:        "alice",
		Date:        "2026-08-28T09:00:00Z",
		SleepHours:  8,
		Mood:        MoodHappy,
		WaterIntake: 5,
		ScreenTime:  1.5,
	}
	if err := client.Submit(context.Background(), rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got != rec {
		t.Errorf("server received %+v, want %+v", got, rec)
	}
}

func TestCollectorClientWaterIntakeKeyCapitalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if _, ok := raw["WaterIntake"]; !ok {
			t.Error("payload missing WaterIntake key")
		}
		if _, ok := raw["waterIntake"]; ok {
			t.Error("payload must not carry lowercase waterIntake")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewCollectorClient(srv.URL)
	if err := client.Submit(context.Background(), WellnessRecord{Name: "a", Mood: MoodNeutral}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestCollectorClientNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"invalid_value","message":"negative sleepHours"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewCollectorClient(srv.URL)
	err := client.Submit(context.Background(), WellnessRecord{Name: "a", Mood: MoodNeutral})
	if err == nil {
		t.Fatal("expected error on 400")
	}
}

func TestCollectorClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok123" {
			t.Errorf("authorization = %q", auth)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewCollectorClient(srv.URL).WithAuthToken("tok123")
	if err := client.Submit(context.Background(), WellnessRecord{Name: "a", Mood: MoodNeutral}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}
