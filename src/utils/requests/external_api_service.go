package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// ExternalAPIService performs authenticated JSON requests against upstream APIs.
type ExternalAPIService struct {
	client *http.Client
}

// NewExternalAPIService creates a service whose requests give up after timeout.
// A zero timeout means no client-side limit beyond the request context.
func NewExternalAPIService(timeout time.Duration) *ExternalAPIService {
	return &ExternalAPIService{client: &http.Client{Timeout: timeout}}
}

// makeRequest builds and sends a request, supporting optional query parameters
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint, token string, params url.Values, body interface{}) (*http.Response, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return s.client.Do(req)
}

// Get makes a GET request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Get(ctx context.Context, endpoint, token string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodGet, endpoint, token, params, nil)
}
