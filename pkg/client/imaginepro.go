package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/imaginepro/imaginepro-go/pkg/config"
	"github.com/imaginepro/imaginepro-go/pkg/types"
)

const (
	imaginePath = "/api/v1/nova/imagine"
	buttonPath  = "/api/v1/nova/button"
	fetchPath   = "/api/v1/message/fetch/%s"
)

// ImagineProClient handles communication with the ImaginePro API
type ImagineProClient struct {
	opts       config.Options
	httpClient *http.Client
}

// NewImagineProClient creates a new ImaginePro API client. Unset options
// fall back to the documented defaults; the API key is required.
func NewImagineProClient(opts config.Options) (*ImagineProClient, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &ImagineProClient{
		opts: opts,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Imagine submits a new generation task. The response acknowledges the
// task; poll with FetchMessage to observe completion.
func (c *ImagineProClient) Imagine(ctx context.Context, params types.ImagineParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var task types.TaskResponse
	if err := c.postJSON(ctx, imaginePath, params.Payload(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// PressButton triggers a follow-up action on a generated message.
func (c *ImagineProClient) PressButton(ctx context.Context, params types.ButtonPressParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var task types.TaskResponse
	if err := c.postJSON(ctx, buttonPath, params.Payload(), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// FetchMessageOnce performs a single status check for the message and
// returns whatever status is reported, terminal or not.
func (c *ImagineProClient) FetchMessageOnce(ctx context.Context, messageID string) (*types.Message, error) {
	if messageID == "" {
		return nil, &types.ValidationError{Field: "messageId", Reason: "must not be empty"}
	}
	var msg types.Message
	if err := c.getJSON(ctx, fmt.Sprintf(fetchPath, messageID), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// FetchMessage polls the message status at the configured interval until
// it reaches DONE or FAIL, or the timeout elapses. A timeout of zero or
// less uses the configured default. FAIL is a normal terminal state:
// inspect Message.Error rather than the returned error.
func (c *ImagineProClient) FetchMessage(ctx context.Context, messageID string, timeout time.Duration) (*types.Message, error) {
	if timeout <= 0 {
		timeout = c.opts.DefaultTimeout
	}
	start := time.Now()

	for {
		msg, err := c.FetchMessageOnce(ctx, messageID)
		if err != nil {
			return nil, err
		}

		if c.opts.Debug {
			log.Debugf("message %s: status=%s progress=%d", messageID, msg.Status, msg.Progress)
		}

		if types.IsTerminal(msg.Status) {
			return msg, nil
		}

		if elapsed := time.Since(start); elapsed >= timeout {
			return nil, &TimeoutError{MessageID: messageID, Elapsed: elapsed}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.opts.FetchInterval):
		}
	}
}

func (c *ImagineProClient) postJSON(ctx context.Context, path string, body map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.opts.Debug {
		// Mask bodies can be large base64 blobs
		if len(payload) > 1000 {
			log.Debugf("POST %s: [%d bytes body]", path, len(payload))
		} else {
			log.Debugf("POST %s: %s", path, payload)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.opts.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, out)
}

func (c *ImagineProClient) getJSON(ctx context.Context, path string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.opts.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	return c.do(httpReq, out)
}

func (c *ImagineProClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.opts.Debug {
		if len(respBody) > 1000 {
			log.Debugf("%s %s: status=%d [%d bytes body]", req.Method, req.URL.Path, resp.StatusCode, len(respBody))
		} else {
			log.Debugf("%s %s: status=%d body=%s", req.Method, req.URL.Path, resp.StatusCode, respBody)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, respBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// errorMessage resolves the failure text for a non-success response:
// the server's JSON error field when present, else the HTTP status
// text, else a generic fallback.
func errorMessage(statusCode int, body []byte) string {
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return msg
	}
	if reason := http.StatusText(statusCode); reason != "" {
		return reason
	}
	return "request failed"
}
