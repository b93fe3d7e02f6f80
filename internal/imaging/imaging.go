// Package imaging validates and transcodes uploaded photos before they are
// persisted alongside a log record.
package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"

	// GIF registration for image.DecodeConfig; animated GIFs are stored
	// unmodified so the frames are never decoded here.
	_ "image/gif"
)

// Upload constraints.
const (
	MaxUploadBytes = 5 << 20
	maxDimension   = 800
	jpegQuality    = 85
)

// Errors surfaced to the validation layer as problems with the image field.
var (
	ErrTooLarge        = errors.New("imaging: upload exceeds 5 MB")
	ErrUnsupportedType = errors.New("imaging: content type must be JPEG, PNG, or GIF")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Sniff determines the content type from the upload bytes. The client's
// declared type is never trusted.
func Sniff(data []byte) string {
	return http.DetectContentType(data)
}

// Check validates size and sniffed type, returning the content type for
// storage.
func Check(data []byte) (string, error) {
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	ct := Sniff(data)
	if !allowedTypes[ct] {
		return "", ErrUnsupportedType
	}
	return ct, nil
}

// Process checks an upload and shrinks it for storage: JPEG and PNG larger
// than 800px on the longest side are resized and re-encoded; GIFs pass
// through unmodified to preserve animation. Transcoding failures fall back
// to storing the original bytes rather than failing the request.
func Process(data []byte) ([]byte, string, error) {
	ct, err := Check(data)
	if err != nil {
		return nil, "", err
	}
	if ct == "image/gif" {
		return data, ct, nil
	}

	out, err := shrink(data, ct)
	if err != nil {
		return data, ct, nil
	}
	return out, ct, nil
}

// shrink decodes, scales the longest side down to maxDimension, and
// re-encodes. Images already within bounds are returned as-is.
func shrink(data []byte, contentType string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDimension && h <= maxDimension {
		return data, nil
	}

	if w >= h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ETag returns the strong cache-validation token for stored image bytes.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
