package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JurgensdeBruin/Multi-Agent-Doc-Sum/internal/platform/logger"
)

type SearchConfig struct {
	Endpoint   string
	IndexName  string
	APIKey     string
	APIVersion string
	Timeout    time.Duration
}

// SearchService is the data-plane surface of the search service: document
// lookup by key plus on-demand indexer runs. The index itself is populated by
// the external enrichment pipeline, never written to directly.
type SearchService interface {
	GetDocument(ctx context.Context, key string) (*Document, error)
	RunIndexer(ctx context.Context, name string) error
}

// Document is an indexed RFP record: extracted text plus the enrichment
// outputs and storage metadata projected by the indexer.
type Document struct {
	ID                  string   `json:"id"`
	GUID                string   `json:"guid"`
	Content             string   `json:"content"`
	FileName            string   `json:"fileName"`
	UploadDate          string   `json:"uploadDate"`
	KeyPhrases          []string `json:"keyPhrases"`
	LanguageCode        string   `json:"languageCode"`
	SentimentScore      float64  `json:"sentimentScore"`
	Persons             []string `json:"persons"`
	Organizations       []string `json:"organizations"`
	Locations           []string `json:"locations"`
	StoragePath         string   `json:"metadata_storage_path"`
	StorageName         string   `json:"metadata_storage_name"`
	StorageLastModified string   `json:"metadata_storage_last_modified"`
	StorageContentType  string   `json:"metadata_storage_content_type"`
	StorageSize         int64    `json:"metadata_storage_size"`
}

type searchClient struct {
	log  *logger.Logger
	cfg  SearchConfig
	http *http.Client
}

func NewSearchService(log *logger.Logger, cfg SearchConfig) (SearchService, error) {
	c, err := newSearchClient(log, cfg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.IndexName) == "" {
		return nil, fmt.Errorf("missing search index name")
	}
	return c, nil
}

func newSearchClient(log *logger.Logger, cfg SearchConfig) (*searchClient, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("missing search service endpoint")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing search api key")
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = "2024-07-01"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &searchClient{
		log:  log.With("client", "SearchClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *searchClient) GetDocument(ctx context.Context, key string) (*Document, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("document key required")
	}
	u := c.url("/indexes/"+url.PathEscape(c.cfg.IndexName)+"/docs/"+url.PathEscape(key), nil)
	raw, status, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("document %q: %w", key, ErrNotFound)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("search get_document http %d: %s", status, string(raw))
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("search get_document decode: %w", err)
	}
	return &doc, nil
}

func (c *searchClient) RunIndexer(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("indexer name required")
	}
	u := c.url("/indexers/"+url.PathEscape(name)+"/search.run", nil)
	raw, status, err := c.do(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	// The service acknowledges an on-demand run with 202.
	if status < 200 || status >= 300 {
		return fmt.Errorf("search run_indexer http %d: %s", status, string(raw))
	}
	c.log.Debug("indexer run triggered", "indexer", name)
	return nil
}

func (c *searchClient) url(path string, extra url.Values) string {
	q := url.Values{}
	q.Set("api-version", c.cfg.APIVersion)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return strings.TrimRight(c.cfg.Endpoint, "/") + path + "?" + q.Encode()
}

func (c *searchClient) do(ctx context.Context, method, u string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = strings.NewReader(string(payload))
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("api-key", c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return raw, resp.StatusCode, nil
}
