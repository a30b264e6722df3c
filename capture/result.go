package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"os"
)

// payload holds captured bytes and provides helpers for common output
// formats such as raw bytes, base64 encoding, and streaming readers.
//
// It is safe to call its methods multiple times. The underlying data
// is never modified.
type payload struct {
	data []byte
}

// Bytes returns the raw content.
func (p *payload) Bytes() []byte {
	return p.data
}

// Base64 returns the content encoded as a standard base64 string
// (RFC 4648). This is useful for embedding in JSON payloads or
// uploading to services that accept base64-encoded content.
func (p *payload) Base64() string {
	return base64.StdEncoding.EncodeToString(p.data)
}

// Reader returns an [*bytes.Reader] over the content. This is suitable
// for streaming uploads to cloud storage or any API that accepts an
// [io.Reader].
func (p *payload) Reader() *bytes.Reader {
	return bytes.NewReader(p.data)
}

// WriteTo writes the full content to w. It implements [io.WriterTo].
func (p *payload) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.data)
	return int64(n), err
}

// WriteToFile writes the content to the file at path, creating it if
// needed.
func (p *payload) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, p.data, perm)
}

// Len returns the size of the content in bytes.
func (p *payload) Len() int {
	return len(p.data)
}

// Shot is a captured page screenshot in PNG format.
type Shot struct {
	payload

	// URL is the address the screenshot was taken from.
	URL string
	// Viewport is the emulated viewport as [width, height] in pixels.
	// With full-page capture the image may be taller than the viewport.
	Viewport [2]int
}

// NewShot wraps already-captured PNG data in a Shot, for serving
// cached or stored captures.
func NewShot(data []byte, url string, viewport [2]int) *Shot {
	return &Shot{payload: payload{data: data}, URL: url, Viewport: viewport}
}

// Image decodes the screenshot into an [image.Image].
func (s *Shot) Image() (image.Image, error) {
	return png.Decode(bytes.NewReader(s.data))
}

// PDF is a rendered PDF document.
type PDF struct {
	payload
}

// NewPDF wraps rendered PDF data, for serving cached or stored
// documents.
func NewPDF(data []byte) *PDF {
	return &PDF{payload: payload{data: data}}
}
