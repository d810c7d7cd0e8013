// Package qrimg renders URLs as QR code rasters and resizes them for
// storage. Both operations are pure functions over byte slices.
package qrimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// renderSize is the edge length of the initial render. The stored copy
// is produced separately by ResizePNG.
const renderSize = 256

// Render encodes text as a square QR code PNG at recovery level High,
// which keeps the payload scannable with up to ~30% of the image
// obscured or damaged.
func Render(text string) ([]byte, error) {
	data, err := qrcode.Encode(text, qrcode.High, renderSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return data, nil
}

// ResizePNG scales a PNG raster to target x target pixels and
// re-encodes it losslessly.
func ResizePNG(data []byte, target int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, target, target))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL wraps a PNG as a data: URL for inline display.
func DataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
