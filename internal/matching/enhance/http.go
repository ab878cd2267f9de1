// internal/matching/enhance/http.go
package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	enhancePath     = "/api/ai/enhance-profile"
	maxResponseSize = 1 << 20
)

var ErrUnexpectedStatus = errors.New("UNEXPECTED_STATUS")

// HTTPProvider posts the profile summary to the GenAI service.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider uses client as given; the Adapter bounds every call with
// its own deadline.
func NewHTTPProvider(baseURL, apiKey string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: MaxTimeout}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (p *HTTPProvider) Name() string { return "http" }

func (p *HTTPProvider) Complete(ctx context.Context, summary Summary) ([]byte, error) {
	body, err := json.Marshal(map[string]interface{}{
		"profile": summary,
		"fields":  []string{"industryAlignment", "careerTrajectory", "skillGaps", "workingStyle", "marketValue", "confidence"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+enhancePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	// The service wraps results as {"data": {...}} on newer deployments.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(data, &envelope) == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		return envelope.Data, nil
	}
	return data, nil
}
