package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase    string
	token      string
	smokeName  string
	client     = &http.Client{Timeout: 30 * time.Second}
	testDate   string
	createdIDs = make(map[string]string) // track created resources for cleanup
)

func main() {
	fmt.Println("=== Stridewell E2E Smoke Test ===")
	fmt.Println()

	// Load config from env
	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")
	smokeName = getEnv("SMOKE_NAME", "smoke-user")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Printf("Name: %s\n", smokeName)
	fmt.Println()

	// Test date (today)
	testDate = time.Now().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Dev Auth", testDevAuth},
		{"Submit Record", testSubmitRecord},
		{"List Records", testListRecords},
		{"Daily Summary", testDailySummary},
		{"Create Report (CSV)", testCreateReportCSV},
		{"List Reports", testListReports},
		{"Download Report", testDownloadReport},
		{"Download URL", testDownloadURL},
		{"Delete Report", testDeleteReport},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := doRequest("GET", "/healthz", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusOK)
}

// testDevAuth fetches a token from the dev auth endpoint unless one was
// provided via SMOKE_TOKEN. A 404 means dev auth is disabled; if a token
// is not required anyway, that is fine.
func testDevAuth() error {
	if token != "" {
		return nil
	}

	payload := map[string]string{"email": smokeName + "@smoke.local"}
	resp, err := doRequest("POST", "/api/auth/dev", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		fmt.Printf("(dev auth disabled, continuing unauthenticated) ")
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	token = result.AccessToken
	return nil
}

func testSubmitRecord() error {
	payload := map[string]interface{}{
		"name":        smokeName,
		"date":        testDate,
		"sleepHours":  7,
		"mood":        "happy",
		"WaterIntake": 5,
		"screenTime":  2.25,
	}

	resp, err := doRequest("POST", "/api/health", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Status != "ok" {
		return fmt.Errorf("unexpected status %q", result.Status)
	}

	createdIDs["record"] = result.ID
	return nil
}

func testListRecords() error {
	resp, err := doRequest("GET", "/api/health/records?name="+smokeName+"&from="+testDate+"&to="+testDate, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Records []struct {
			ID string `json:"id"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.Records) == 0 {
		return fmt.Errorf("no records found for %s on %s", smokeName, testDate)
	}

	return nil
}

func testDailySummary() error {
	resp, err := doRequest("GET", "/api/health/daily?name="+smokeName+"&date="+testDate, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Records           int `json:"records"`
		TotalWaterGlasses int `json:"totalWaterGlasses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Records == 0 {
		return fmt.Errorf("daily summary reports 0 records")
	}

	return nil
}

func testCreateReportCSV() error {
	fromDate := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	payload := map[string]interface{}{
		"name":   smokeName,
		"format": "csv",
		"from":   fromDate,
		"to":     testDate,
	}

	resp, err := doRequest("POST", "/api/reports", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Status != "ready" {
		return fmt.Errorf("unexpected report status %q", result.Status)
	}

	createdIDs["report"] = result.ID
	return nil
}

func testListReports() error {
	resp, err := doRequest("GET", "/api/reports?name="+smokeName, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		Reports []struct {
			ID string `json:"id"`
		} `json:"reports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if len(result.Reports) == 0 {
		return fmt.Errorf("no reports listed")
	}

	return nil
}

func testDownloadReport() error {
	resp, err := doRequest("GET", "/api/reports/"+createdIDs["report"]+"/download", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if !strings.HasPrefix(string(data), "date,name,") {
		return fmt.Errorf("unexpected CSV content: %.60s", string(data))
	}

	return nil
}

func testDownloadURL() error {
	resp, err := doRequest("GET", "/api/reports/"+createdIDs["report"]+"/url", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.URL == "" {
		return fmt.Errorf("empty download URL")
	}

	return nil
}

func testDeleteReport() error {
	resp, err := doRequest("DELETE", "/api/reports/"+createdIDs["report"], nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectStatus(resp, http.StatusNoContent)
}

// ---- helpers ----

func doRequest(method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return client.Do(req)
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		return statusError(resp)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
