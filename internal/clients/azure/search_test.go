package azure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestSearchService(t *testing.T, handler http.Handler) SearchService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc, err := NewSearchService(newTestLogger(t), SearchConfig{
		Endpoint:  srv.URL,
		IndexName: "rfp-index",
		APIKey:    "test-key",
	})
	if err != nil {
		t.Fatalf("NewSearchService: %v", err)
	}
	return svc
}

func TestGetDocumentDecodesRecord(t *testing.T) {
	var gotPath, gotAPIKey, gotVersion string
	svc := newTestSearchService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		gotVersion = r.URL.Query().Get("api-version")
		json.NewEncoder(w).Encode(map[string]any{
			"id":             "D1",
			"guid":           "D1",
			"content":        "full text",
			"keyPhrases":     []string{"deadline", "budget"},
			"languageCode":   "en",
			"sentimentScore": 0.42,
			"organizations":  []string{"Acme Corp"},
		})
	}))

	doc, err := svc.GetDocument(context.Background(), "D1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if gotPath != "/indexes/rfp-index/docs/D1" {
		t.Fatalf("path: want=%q got=%q", "/indexes/rfp-index/docs/D1", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Fatalf("api-key header: want=%q got=%q", "test-key", gotAPIKey)
	}
	if gotVersion == "" {
		t.Fatalf("api-version query parameter missing")
	}
	if doc.GUID != "D1" || doc.Content != "full text" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if len(doc.KeyPhrases) != 2 || doc.KeyPhrases[0] != "deadline" {
		t.Fatalf("key phrases: got=%v", doc.KeyPhrases)
	}
	if doc.SentimentScore != 0.42 {
		t.Fatalf("sentiment: want=0.42 got=%v", doc.SentimentScore)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	svc := newTestSearchService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Document not found"}}`, http.StatusNotFound)
	}))

	_, err := svc.GetDocument(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDocumentServerError(t *testing.T) {
	svc := newTestSearchService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := svc.GetDocument(context.Background(), "D1")
	if err == nil {
		t.Fatalf("expected error on http 500")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("server error must not map to ErrNotFound")
	}
}

func TestRunIndexerPostsRun(t *testing.T) {
	var gotMethod, gotPath string
	svc := newTestSearchService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))

	if err := svc.RunIndexer(context.Background(), "rfp-indexer"); err != nil {
		t.Fatalf("RunIndexer: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method: want=POST got=%s", gotMethod)
	}
	if gotPath != "/indexers/rfp-indexer/search.run" {
		t.Fatalf("path: want=%q got=%q", "/indexers/rfp-indexer/search.run", gotPath)
	}
}

func TestRunIndexerFailureSurfaces(t *testing.T) {
	svc := newTestSearchService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))

	if err := svc.RunIndexer(context.Background(), "rfp-indexer"); err == nil {
		t.Fatalf("expected error on http 429")
	}
}

func TestSearchAdminCreatesResources(t *testing.T) {
	type ref struct {
		method string
		path   string
	}
	var calls []ref
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, ref{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	admin, err := NewSearchAdminService(newTestLogger(t), SearchConfig{Endpoint: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewSearchAdminService: %v", err)
	}
	ctx := context.Background()
	if err := admin.CreateIndex(ctx, Index{Name: "rfp-index"}); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	if err := admin.CreateDataSource(ctx, DataSource{Name: "rfp-datasource", Type: "azureblob"}); err != nil {
		t.Fatalf("CreateDataSource: %v", err)
	}
	if err := admin.CreateSkillset(ctx, Skillset{Name: "rfp-skillset"}); err != nil {
		t.Fatalf("CreateSkillset: %v", err)
	}
	if err := admin.CreateIndexer(ctx, Indexer{Name: "rfp-indexer"}); err != nil {
		t.Fatalf("CreateIndexer: %v", err)
	}

	want := []ref{
		{http.MethodPut, "/indexes/rfp-index"},
		{http.MethodPut, "/datasources/rfp-datasource"},
		{http.MethodPut, "/skillsets/rfp-skillset"},
		{http.MethodPut, "/indexers/rfp-indexer"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls: want=%d got=%d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d: want=%+v got=%+v", i, want[i], calls[i])
		}
	}
}
