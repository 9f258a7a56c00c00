package types

import "fmt"

// Button codes for follow-up actions on a generated message. Upscale and
// variant codes are positional ("U1".."U4", "V1".."V4"); reroll and
// vary-region are fixed strings defined by the service.
const (
	ButtonReroll     = "🔄"
	ButtonVaryRegion = "Vary (Region)"
)

// UpscaleButton returns the button code for upscaling the image at the
// given 1-based grid index.
func UpscaleButton(index int) string {
	return fmt.Sprintf("U%d", index)
}

// VariantButton returns the button code for generating a variant of the
// image at the given 1-based grid index.
func VariantButton(index int) string {
	return fmt.Sprintf("V%d", index)
}
