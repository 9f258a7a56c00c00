package client

import (
	"context"
	"time"

	"github.com/imaginepro/imaginepro-go/pkg/types"
)

// Client defines the interface for interacting with the ImaginePro API
type Client interface {
	// Imagine submits a new image-generation task
	Imagine(ctx context.Context, params types.ImagineParams) (*types.TaskResponse, error)

	// PressButton triggers a follow-up action on a generated message
	PressButton(ctx context.Context, params types.ButtonPressParams) (*types.TaskResponse, error)

	// Upscale presses the "U<index>" button for the message
	Upscale(ctx context.Context, params types.UpscaleParams) (*types.TaskResponse, error)

	// Variant presses the "V<index>" button for the message
	Variant(ctx context.Context, params types.VariantParams) (*types.TaskResponse, error)

	// Reroll regenerates the whole grid for the message
	Reroll(ctx context.Context, params types.RerollParams) (*types.TaskResponse, error)

	// Inpainting runs the vary-region action with the given mask
	Inpainting(ctx context.Context, params types.InpaintingParams) (*types.TaskResponse, error)

	// FetchMessageOnce performs exactly one status check
	FetchMessageOnce(ctx context.Context, messageID string) (*types.Message, error)

	// FetchMessage polls until the message reaches a terminal status or
	// the timeout elapses; a timeout of zero uses the configured default
	FetchMessage(ctx context.Context, messageID string, timeout time.Duration) (*types.Message, error)
}

// Ensure both implementations satisfy the Client interface
var (
	_ Client = (*ImagineProClient)(nil)
	_ Client = (*MockClient)(nil)
)
