package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEstimate(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotText = payload.Text

		_, _ = w.Write([]byte(`{"polarity": 0.42, "subjectivity": 0.9}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	polarity, subjectivity, err := client.Estimate(context.Background(), "scored text")
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}

	if polarity != 0.42 || subjectivity != 0.9 {
		t.Fatalf("unexpected scores: %v, %v", polarity, subjectivity)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotText != "scored text" {
		t.Fatalf("unexpected request text: %q", gotText)
	}
}

func TestEstimateRejectsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	cases := []string{
		`{"polarity": 1.5, "subjectivity": 0.5}`,
		`{"polarity": 0.5, "subjectivity": -0.1}`,
	}

	for _, body := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		client := NewClient(server.URL, "")
		if _, _, err := client.Estimate(context.Background(), "text"); err == nil {
			t.Fatalf("expected range error for %s", body)
		}
		server.Close()
	}
}

func TestEstimateSurfacesHTTPErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model offline", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, _, err := client.Estimate(context.Background(), "text"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
