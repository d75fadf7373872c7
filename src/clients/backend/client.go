// Package backend fetches report data from the back-office REST API.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reports/src/config"
	"reports/src/schemas"
	"reports/src/utils"
	requests "reports/src/utils/requests"
	"strings"
)

// maxResponseBytes bounds how much of a report response is read.
const maxResponseBytes = 32 << 20

type ClientI interface {
	GetReportData(ctx context.Context, token string, reportType schemas.ReportType, dateRange schemas.DateRange) (json.RawMessage, error)
}

type Client struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		API:     requests.NewExternalAPIService(cfg.Timeout),
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// GetReportData calls GET {baseUrl}/reports/{type} and returns the raw body.
func (c *Client) GetReportData(ctx context.Context, token string, reportType schemas.ReportType, dateRange schemas.DateRange) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("startDate", dateRange.StartDate)
	params.Set("endDate", dateRange.EndDate)

	endpoint := fmt.Sprintf("%s/reports/%s", c.BaseURL, url.PathEscape(string(reportType)))
	resp, err := c.API.Get(ctx, endpoint, token, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s report data: %w", reportType, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s report data: %w", reportType, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp.StatusCode, body)
	}
	if !json.Valid(body) {
		return nil, utils.BadGateway("backend returned invalid JSON")
	}
	return json.RawMessage(body), nil
}

// upstreamError keeps client errors and reports server errors as 502.
func upstreamError(status int, body []byte) error {
	message := strings.TrimSpace(string(body))
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		if envelope.Message != "" {
			message = envelope.Message
		} else if envelope.Error != "" {
			message = envelope.Error
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}

	if status >= 500 {
		return utils.BadGateway(fmt.Sprintf("backend error: %s", message))
	}
	return utils.NewHTTPError(status, message)
}
