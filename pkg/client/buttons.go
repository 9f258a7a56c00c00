package client

import (
	"context"

	"github.com/imaginepro/imaginepro-go/pkg/types"
)

// Upscale upscales one image of the generated grid by pressing the
// "U<index>" button.
func (c *ImagineProClient) Upscale(ctx context.Context, params types.UpscaleParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return c.PressButton(ctx, params.ButtonPress())
}

// Variant generates a variant of one image of the grid by pressing the
// "V<index>" button.
func (c *ImagineProClient) Variant(ctx context.Context, params types.VariantParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return c.PressButton(ctx, params.ButtonPress())
}

// Reroll regenerates the whole grid for the message.
func (c *ImagineProClient) Reroll(ctx context.Context, params types.RerollParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return c.PressButton(ctx, params.ButtonPress())
}

// Inpainting runs the vary-region action, repainting the masked region
// of the message, optionally steered by a prompt.
func (c *ImagineProClient) Inpainting(ctx context.Context, params types.InpaintingParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return c.PressButton(ctx, params.ButtonPress())
}
