// Package client provides an HTTP client for the assetvault maintenance API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"assetvault/internal/revaluer"
)

// RevalueRequest selects the namespace to revalue. All identity fields empty
// selects the guest namespace.
type RevalueRequest struct {
	UserID string `json:"user_id,omitempty"`
	UID    string `json:"uid,omitempty"`
	Email  string `json:"email,omitempty"`
	DryRun bool   `json:"dry_run"`
}

// APIError is a non-200 response from the maintenance API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s: %s", e.Status, e.Code, e.Message)
}

// MaintenanceClient communicates with the maintenance endpoints of a running server.
type MaintenanceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMaintenanceClient creates a new maintenance API client.
func NewMaintenanceClient(baseURL, apiKey string, httpClient *http.Client) *MaintenanceClient {
	return &MaintenanceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Revalue asks the server to revalue one namespace and returns the run result.
func (c *MaintenanceClient) Revalue(ctx context.Context, r RevalueRequest) (*revaluer.RunResult, error) {
	jsonBody, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling revalue request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/maintenance/revalue", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("revaluing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Code = body.Error.Code
			apiErr.Message = body.Error.Message
		}
		return nil, fmt.Errorf("revaluing: %w", apiErr)
	}

	var result struct {
		Result *revaluer.RunResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding revalue response: %w", err)
	}
	if result.Result == nil {
		return nil, fmt.Errorf("decoding revalue response: missing result")
	}
	return result.Result, nil
}
