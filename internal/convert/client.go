package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Client talks to the external docx-to-pdf conversion service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether a conversion endpoint is set. The app runs
// fine without one; PDF download is simply unavailable.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// ToPDF sends a filled docx to the conversion service and returns the
// rendered PDF bytes.
func (c *Client) ToPDF(ctx context.Context, docx []byte) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("conversion service not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert", bytes.NewReader(docx))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", docxMIME)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("convert: status %d: %s", resp.StatusCode, string(respBody))
	}

	pdf, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read converted pdf: %w", err)
	}
	if !LooksLikePDF(pdf) {
		return nil, fmt.Errorf("convert: response is not a pdf")
	}
	return pdf, nil
}
