package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// apiError mirrors the service error envelope.
type apiError struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type apiClient struct {
	http *resty.Client
}

func newAPIClient(baseURL, token string, timeout time.Duration) *apiClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "messagingctl/"+version)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &apiClient{http: client}
}

func (c *apiClient) do(ctx context.Context, method, path string, body any, query map[string]string) (json.RawMessage, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		var apiErr apiError
		if jsonErr := json.Unmarshal(resp.Body(), &apiErr); jsonErr == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%d %s: %s", resp.StatusCode(), apiErr.Error, apiErr.Message)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status())
	}
	return resp.Body(), nil
}

func pageQuery(page, size int) map[string]string {
	return map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = w.Write(raw)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
