package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ReviewScanner/internal/domain"
)

func TestInit(t *testing.T) {
	t.Parallel()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	if err := NewClient(healthy.URL, "").Init(context.Background()); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "starting up", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	if err := NewClient(down.URL, "").Init(context.Background()); err == nil {
		t.Fatal("expected unhealthy service error")
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	var gotAuth, gotText string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotText = payload.Text

		_ = json.NewEncoder(w).Encode(map[string]string{"label": "LABEL_2"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")

	label, err := client.Classify(context.Background(), "harika uygulama")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	if label != domain.SentimentPositive {
		t.Fatalf("unexpected label: %s", label)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if gotText != "harika uygulama" {
		t.Fatalf("unexpected text payload: %s", gotText)
	}
}

func TestMapLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.Sentiment
	}{
		{"positive", domain.SentimentPositive},
		{"POS", domain.SentimentPositive},
		{"label_2", domain.SentimentPositive},
		{"negative", domain.SentimentNegative},
		{"neg", domain.SentimentNegative},
		{"label_0", domain.SentimentNegative},
		{"neutral", domain.SentimentNeutral},
		{"label_1", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
	}

	for _, tc := range tests {
		if got := mapLabel(tc.in); got != tc.want {
			t.Fatalf("mapLabel(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
