package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	domain "dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/generated/servers"
)

var ErrRecordRejected = errors.New("location write rejected")

// HTTPRecorder posts fixes to the dispatch API the way the courier app does.
type HTTPRecorder struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewHTTPRecorder creates a recorder for the API at baseURL (for example
// "http://localhost:8080/api/v1"). token is the courier's bearer token.
func NewHTTPRecorder(client *http.Client, baseURL, token string) *HTTPRecorder {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRecorder{client: client, baseURL: strings.TrimRight(baseURL, "/"), token: token}
}

func (r *HTTPRecorder) RecordLocation(ctx context.Context, courierID kernel.UUID, fix Fix) (domain.Outcome, error) {
	accuracy := fix.Accuracy
	body, err := json.Marshal(servers.RecordLocationJSONRequestBody{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  &accuracy,
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	url := r.baseURL + "/couriers/" + courierID.String() + "/locations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.Outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr servers.Error
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return domain.Outcome{}, fmt.Errorf("%w: %d %s", ErrRecordRejected, resp.StatusCode, apiErr.Message)
	}

	var result servers.LocationResult
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.Outcome{}, fmt.Errorf("decode location result: %w", err)
	}
	if result.Result == servers.Ack {
		return domain.Ack(), nil
	}
	if result.Reason == nil {
		return domain.Outcome{}, fmt.Errorf("%w: skipped without a reason", ErrRecordRejected)
	}
	return domain.Skipped(domain.SkipReason(*result.Reason)), nil
}
