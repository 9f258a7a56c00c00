package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imaginepro/imaginepro-go/pkg/config"
	"github.com/imaginepro/imaginepro-go/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ImagineProClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewImagineProClient(config.Options{
		APIKey:         "test-api-key",
		BaseURL:        srv.URL,
		DefaultTimeout: time.Second,
		FetchInterval:  time.Millisecond,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	return body
}

func TestImagineRequest(t *testing.T) {
	var gotBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/nova/imagine" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-api-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected Content-Type %q", ct)
		}
		gotBody = decodeBody(t, r)
		writeJSON(w, http.StatusOK, `{"success": true, "messageId": "m1"}`)
	})

	task, err := c.Imagine(context.Background(), types.ImagineParams{Prompt: "a beautiful sunset"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.MessageID != "m1" || !task.Success {
		t.Errorf("unexpected task response: %+v", task)
	}
	if gotBody["prompt"] != "a beautiful sunset" {
		t.Errorf("expected prompt in body, got %v", gotBody)
	}
	if _, present := gotBody["ref"]; present {
		t.Errorf("expected absent ref to be omitted, got %v", gotBody)
	}
}

func TestPressButtonRequest(t *testing.T) {
	var gotBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/nova/button" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotBody = decodeBody(t, r)
		writeJSON(w, http.StatusOK, `{"success": true, "messageId": "m2"}`)
	})

	_, err := c.PressButton(context.Background(), types.ButtonPressParams{
		MessageID: "m1",
		Button:    types.ButtonReroll,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["messageId"] != "m1" {
		t.Errorf("expected messageId 'm1', got %v", gotBody["messageId"])
	}
	if gotBody["button"] != types.ButtonReroll {
		t.Errorf("expected reroll button, got %v", gotBody["button"])
	}
}

// TestButtonOperationsDelegate verifies each convenience operation hits
// the button endpoint with the right synthesized code
func TestButtonOperationsDelegate(t *testing.T) {
	var gotBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody = decodeBody(t, r)
		writeJSON(w, http.StatusOK, `{"success": true, "messageId": "m2"}`)
	})
	ctx := context.Background()

	if _, err := c.Upscale(ctx, types.UpscaleParams{MessageID: "m1", Index: 1}); err != nil {
		t.Fatalf("upscale: %v", err)
	}
	if gotBody["button"] != "U1" {
		t.Errorf("expected button 'U1', got %v", gotBody["button"])
	}

	if _, err := c.Variant(ctx, types.VariantParams{MessageID: "m1", Index: 2}); err != nil {
		t.Fatalf("variant: %v", err)
	}
	if gotBody["button"] != "V2" {
		t.Errorf("expected button 'V2', got %v", gotBody["button"])
	}

	if _, err := c.Reroll(ctx, types.RerollParams{MessageID: "m1"}); err != nil {
		t.Fatalf("reroll: %v", err)
	}
	if gotBody["button"] != types.ButtonReroll {
		t.Errorf("expected reroll button, got %v", gotBody["button"])
	}

	if _, err := c.Inpainting(ctx, types.InpaintingParams{
		MessageID: "m1",
		Mask:      "abc",
		Prompt:    types.String("x"),
	}); err != nil {
		t.Fatalf("inpainting: %v", err)
	}
	if gotBody["button"] != types.ButtonVaryRegion {
		t.Errorf("expected vary-region button, got %v", gotBody["button"])
	}
	if gotBody["mask"] != "abc" || gotBody["prompt"] != "x" {
		t.Errorf("expected mask and prompt in body, got %v", gotBody)
	}
}

// TestValidationSkipsNetwork verifies parameter validation fails before
// any request is issued
func TestValidationSkipsNetwork(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for invalid params")
	})

	_, err := c.Imagine(context.Background(), types.ImagineParams{})
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *types.ValidationError, got %v", err)
	}

	_, err = c.Inpainting(context.Background(), types.InpaintingParams{MessageID: "m1"})
	if !errors.As(err, &verr) {
		t.Fatalf("expected *types.ValidationError, got %v", err)
	}
}

func TestAPIErrorUsesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error": "bad prompt"}`)
	})

	_, err := c.Imagine(context.Background(), types.ImagineParams{Prompt: "p"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "bad prompt" {
		t.Errorf("expected message 'bad prompt', got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
}

func TestAPIErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Imagine(context.Background(), types.ImagineParams{Prompt: "p"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusServiceUnavailable) {
		t.Errorf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestFetchMessageOnceSingleRequest(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/api/v1/message/fetch/m1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-api-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		writeJSON(w, http.StatusOK, `{"messageId": "m1", "status": "PROCESSING", "progress": 50}`)
	})

	msg, err := c.FetchMessageOnce(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != types.StatusProcessing || msg.Progress != 50 {
		t.Errorf("unexpected message: %+v", msg)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls)
	}
}

// TestFetchMessagePollsUntilDone verifies the poll loop stops on the
// first terminal status
func TestFetchMessagePollsUntilDone(t *testing.T) {
	statuses := []string{types.StatusProcessing, types.StatusProcessing, types.StatusDone}
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		status := statuses[calls]
		calls++
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"messageId": "m1", "status": %q}`, status))
	})

	msg, err := c.FetchMessage(context.Background(), "m1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != types.StatusDone {
		t.Errorf("expected DONE, got %s", msg.Status)
	}
	if calls != 3 {
		t.Errorf("expected 3 fetches, got %d", calls)
	}
}

// TestFetchMessageFailIsTerminal verifies a FAIL status is returned as a
// normal message, not an error
func TestFetchMessageFailIsTerminal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"messageId": "m1", "status": "FAIL", "error": "content filtered"}`)
	})

	msg, err := c.FetchMessage(context.Background(), "m1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != types.StatusFail {
		t.Errorf("expected FAIL, got %s", msg.Status)
	}
	if msg.Error != "content filtered" {
		t.Errorf("expected error text in message, got %q", msg.Error)
	}
}

func TestFetchMessageTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"messageId": "m1", "status": "PROCESSING"}`)
	})

	_, err := c.FetchMessage(context.Background(), "m1", 20*time.Millisecond)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("timeout must not be an APIError")
	}
	if timeoutErr.MessageID != "m1" {
		t.Errorf("expected message id 'm1', got %q", timeoutErr.MessageID)
	}
	if timeoutErr.Elapsed < 20*time.Millisecond {
		t.Errorf("expected elapsed >= timeout, got %v", timeoutErr.Elapsed)
	}
}

func TestFetchMessageContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"messageId": "m1", "status": "PROCESSING"}`)
	})
	// The client would poll for a full second; cancel well before that
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	srvClient := *c
	srvClient.opts.FetchInterval = 50 * time.Millisecond

	_, err := srvClient.FetchMessage(ctx, "m1", 0)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}

func TestFetchMessageTransportErrorStopsPolling(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusInternalServerError, `{"error": "backend down"}`)
	})

	_, err := c.FetchMessage(context.Background(), "m1", 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "backend down" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
	if calls != 1 {
		t.Errorf("expected no retry of a failed fetch, got %d calls", calls)
	}
}
