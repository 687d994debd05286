// internal/services/retrieval_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Retriever returns supplementary reference text for a query. It is an
// external collaborator: the pipeline treats every failure as an empty
// result and keeps going.
type Retriever interface {
	Retrieve(ctx context.Context, query, region string) (string, error)
}

// HTTPRetriever calls the retrieval subsystem over HTTP.
type HTTPRetriever struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRetriever creates a retriever for the given endpoint.
func NewHTTPRetriever(baseURL string) *HTTPRetriever {
	return &HTTPRetriever{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Retrieve fetches reference text. An empty response body is a valid,
// empty result.
func (r *HTTPRetriever) Retrieve(ctx context.Context, query, region string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("region", region)

	req, err := http.NewRequestWithContext(ctx, "GET", r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("retrieval service error (%d): %s", resp.StatusCode, string(body))
	}

	var response struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}

	return response.Text, nil
}
