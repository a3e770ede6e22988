package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// Client is a REST client to one Pinecone index (data plane host).
type Client struct {
	baseURL    string
	apiKey     string
	namespace  string
	httpClient *http.Client
}

type Config struct {
	IndexHost string
	APIKey    string
	Namespace string
	Timeout   time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	host := cfg.IndexHost
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return &Client{
		baseURL:    strings.TrimRight(host, "/"),
		apiKey:     cfg.APIKey,
		namespace:  cfg.Namespace,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type vectorRecord struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (c *Client) Upsert(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	vectors := make([]vectorRecord, 0, len(entries))
	for _, e := range entries {
		vectors = append(vectors, vectorRecord{
			ID:       e.ID,
			Values:   e.Vector,
			Metadata: metadataToMap(e.Metadata),
		})
	}
	reqBody := map[string]any{
		"vectors":   vectors,
		"namespace": c.namespace,
	}
	return c.do(ctx, http.MethodPost, "/vectors/upsert", reqBody, nil, "upsert")
}

func (c *Client) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedChunk, error) {
	reqBody := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
		"namespace":       c.namespace,
	}

	var queryResp struct {
		Matches []struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Metadata map[string]any `json:"metadata"`
		} `json:"matches"`
	}
	if err := c.do(ctx, http.MethodPost, "/query", reqBody, &queryResp, "query"); err != nil {
		return nil, err
	}

	out := make([]domain.RetrievedChunk, 0, len(queryResp.Matches))
	for _, m := range queryResp.Matches {
		out = append(out, domain.RetrievedChunk{
			Metadata: metadataFromMap(m.Metadata),
			Score:    m.Score,
		})
	}
	return out, nil
}

// Fetch returns metadata for the subset of ids present in the index.
// Missing ids are simply absent from the result, which is what the
// indexing pipeline uses for its skip-if-present check.
func (c *Client) Fetch(ctx context.Context, ids []string) (map[string]domain.ChunkMetadata, error) {
	if len(ids) == 0 {
		return map[string]domain.ChunkMetadata{}, nil
	}

	params := url.Values{}
	for _, id := range ids {
		params.Add("ids", id)
	}
	if c.namespace != "" {
		params.Set("namespace", c.namespace)
	}

	var fetchResp struct {
		Vectors map[string]struct {
			Metadata map[string]any `json:"metadata"`
		} `json:"vectors"`
	}
	path := "/vectors/fetch?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &fetchResp, "fetch"); err != nil {
		return nil, err
	}

	out := make(map[string]domain.ChunkMetadata, len(fetchResp.Vectors))
	for id, v := range fetchResp.Vectors {
		out[id] = metadataFromMap(v.Metadata)
	}
	return out, nil
}

func (c *Client) DeleteAll(ctx context.Context, namespace string) error {
	reqBody := map[string]any{
		"deleteAll": true,
		"namespace": namespace,
	}
	return c.do(ctx, http.MethodPost, "/vectors/delete", reqBody, nil, "delete all")
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any, operation string) error {
	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", operation, err)
		}
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinecone %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		statusErr := fmt.Errorf("pinecone %s status: %s", operation, resp.Status)
		if msg := strings.TrimSpace(string(body)); msg != "" {
			statusErr = fmt.Errorf("pinecone %s status: %s: %s", operation, resp.Status, msg)
		}
		// A 404 from the data plane means the index host or namespace
		// resource does not exist.
		if resp.StatusCode == http.StatusNotFound {
			return domain.WrapError(domain.ErrNotFound, "pinecone "+operation, statusErr)
		}
		return statusErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}
