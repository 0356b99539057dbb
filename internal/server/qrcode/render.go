// Package qrcode turns structured payloads into scannable QR images,
// returned both as raw PNG bytes and as an inline data URL.
package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/medapp/internal/common"
	goqr "github.com/skip2/go-qrcode"
)

const (
	// Size is the edge length of the rendered PNG, in pixels.
	Size = 256

	dataURLPrefix = "data:image/png;base64,"
)

// encodePNG is a seam for testing goqr.Encode.
var encodePNG = goqr.Encode

// Code is a rendered QR image.
type Code struct {
	PNG     []byte
	DataURL string
}

// Render serializes payload as JSON and encodes it as a QR code with medium
// error correction. Failures wrap common.ErrRender.
func Render(payload any) (*Code, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal payload: %v", common.ErrRender, err)
	}

	png, err := encodePNG(string(content), goqr.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", common.ErrRender, err)
	}

	return &Code{
		PNG:     png,
		DataURL: DataURL(png),
	}, nil
}

// DataURL wraps png as a self-contained data:image/png;base64 URL.
func DataURL(png []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png)
}
