package types

import "fmt"

// ValidationError reports a missing or malformed request parameter,
// detected before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// BaseParams carries the optional fields shared by every request kind.
// Optional fields are pointers: nil is omitted from the wire payload,
// while a present zero value ("", 0, false) is still sent.
type BaseParams struct {
	// Ref is a correlation reference passed through to the webhook.
	Ref *string
	// WebhookOverride replaces the account webhook URL for this request.
	WebhookOverride *string
	// Timeout is the per-request timeout in seconds.
	Timeout *int
	// DisableCDN disables CDN delivery of the result.
	DisableCDN *bool
}

// payload extracts the base fields under their wire names, producing an
// empty map when all are absent.
func (p BaseParams) payload() map[string]interface{} {
	body := map[string]interface{}{}
	if p.Ref != nil {
		body["ref"] = *p.Ref
	}
	if p.WebhookOverride != nil {
		body["webhookOverride"] = *p.WebhookOverride
	}
	if p.Timeout != nil {
		body["timeout"] = *p.Timeout
	}
	if p.DisableCDN != nil {
		body["disableCdn"] = *p.DisableCDN
	}
	return body
}

// ImagineParams contains parameters for a new image generation.
type ImagineParams struct {
	BaseParams
	Prompt string
}

// Validate checks the required fields.
func (p ImagineParams) Validate() error {
	if p.Prompt == "" {
		return &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	return nil
}

// Payload builds the wire body for POST /api/v1/nova/imagine.
func (p ImagineParams) Payload() map[string]interface{} {
	body := p.BaseParams.payload()
	body["prompt"] = p.Prompt
	return body
}

// ButtonPressParams contains parameters for pressing a button on a
// generated message.
type ButtonPressParams struct {
	BaseParams
	MessageID string
	Button    string
	// Mask is required for the vary-region action.
	Mask *string
	// Prompt optionally steers the vary-region action.
	Prompt *string
}

// Validate checks the required fields.
func (p ButtonPressParams) Validate() error {
	if p.MessageID == "" {
		return &ValidationError{Field: "messageId", Reason: "must not be empty"}
	}
	if p.Button == "" {
		return &ValidationError{Field: "button", Reason: "must not be empty"}
	}
	return nil
}

// Payload builds the wire body for POST /api/v1/nova/button.
func (p ButtonPressParams) Payload() map[string]interface{} {
	body := p.BaseParams.payload()
	body["messageId"] = p.MessageID
	body["button"] = p.Button
	if p.Mask != nil {
		body["mask"] = *p.Mask
	}
	if p.Prompt != nil {
		body["prompt"] = *p.Prompt
	}
	return body
}

// UpscaleParams contains parameters for upscaling one image of a grid.
type UpscaleParams struct {
	BaseParams
	MessageID string
	// Index is the 1-based position in the generated grid.
	Index int
}

// Validate checks the required fields.
func (p UpscaleParams) Validate() error {
	if p.MessageID == "" {
		return &ValidationError{Field: "messageId", Reason: "must not be empty"}
	}
	if p.Index < 1 {
		return &ValidationError{Field: "index", Reason: "must be a positive grid index"}
	}
	return nil
}

// ButtonPress converts the parameters into the equivalent button press.
func (p UpscaleParams) ButtonPress() ButtonPressParams {
	return ButtonPressParams{
		BaseParams: p.BaseParams,
		MessageID:  p.MessageID,
		Button:     UpscaleButton(p.Index),
	}
}

// VariantParams contains parameters for generating a variant of one
// image of a grid.
type VariantParams struct {
	BaseParams
	MessageID string
	// Index is the 1-based position in the generated grid.
	Index int
}

// Validate checks the required fields.
func (p VariantParams) Validate() error {
	if p.MessageID == "" {
		return &ValidationError{Field: "messageId", Reason: "must not be empty"}
	}
	if p.Index < 1 {
		return &ValidationError{Field: "index", Reason: "must be a positive grid index"}
	}
	return nil
}

// ButtonPress converts the parameters into the equivalent button press.
func (p VariantParams) ButtonPress() ButtonPressParams {
	return ButtonPressParams{
		BaseParams: p.BaseParams,
		MessageID:  p.MessageID,
		Button:     VariantButton(p.Index),
	}
}

// RerollParams contains parameters for regenerating the whole grid.
type RerollParams struct {
	BaseParams
	MessageID string
}

// Validate checks the required fields.
func (p RerollParams) Validate() error {
	if p.MessageID == "" {
		return &ValidationError{Field: "messageId", Reason: "must not be empty"}
	}
	return nil
}

// ButtonPress converts the parameters into the equivalent button press.
func (p RerollParams) ButtonPress() ButtonPressParams {
	return ButtonPressParams{
		BaseParams: p.BaseParams,
		MessageID:  p.MessageID,
		Button:     ButtonReroll,
	}
}

// InpaintingParams contains parameters for the vary-region action.
type InpaintingParams struct {
	BaseParams
	MessageID string
	// Mask selects the region to vary. Required.
	Mask string
	// Prompt optionally describes what to paint into the region.
	Prompt *string
}

// Validate checks the required fields.
func (p InpaintingParams) Validate() error {
	if p.MessageID == "" {
		return &ValidationError{Field: "messageId", Reason: "must not be empty"}
	}
	if p.Mask == "" {
		return &ValidationError{Field: "mask", Reason: "must not be empty"}
	}
	return nil
}

// ButtonPress converts the parameters into the equivalent button press.
func (p InpaintingParams) ButtonPress() ButtonPressParams {
	return ButtonPressParams{
		BaseParams: p.BaseParams,
		MessageID:  p.MessageID,
		Button:     ButtonVaryRegion,
		Mask:       &p.Mask,
		Prompt:     p.Prompt,
	}
}
