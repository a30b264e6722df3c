package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestPayloadAccessors(t *testing.T) {
	content := []byte("%PDF-1.4 fake report body")
	p := &PDF{payload: payload{data: content}}

	if !bytes.Equal(p.Bytes(), content) || p.Len() != len(content) {
		t.Fatalf("Bytes/Len mismatch: got %d bytes", p.Len())
	}

	if got, want := p.Base64(), base64.StdEncoding.EncodeToString(content); got != want {
		t.Errorf("Base64() = %q, want %q", got, want)
	}

	got, err := io.ReadAll(p.Reader())
	if err != nil {
		t.Fatalf("reading from Reader(): %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("Reader() content differs from Bytes()")
	}

	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(content)) || !bytes.Equal(buf.Bytes(), content) {
		t.Errorf("WriteTo copied %d bytes, want %d", n, len(content))
	}
}

func TestPayloadWriteToFile(t *testing.T) {
	content := []byte("%PDF-1.4 fake report body")
	p := &PDF{payload: payload{data: content}}

	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := p.WriteToFile(path, 0o600); err != nil {
		t.Fatalf("WriteToFile: %v", err)
	}
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(onDisk, content) {
		t.Error("file content differs from payload")
	}
}

func TestShot_Image(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 12, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 25), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	shot := &Shot{payload: payload{data: buf.Bytes()}, Viewport: [2]int{12, 9}}
	img, err := shot.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 9 {
		t.Errorf("decoded size = %dx%d, want 12x9", b.Dx(), b.Dy())
	}
}

func TestShot_ImageInvalidData(t *testing.T) {
	shot := &Shot{payload: payload{data: []byte("not a png")}}
	if _, err := shot.Image(); err == nil {
		t.Fatal("expected decode error for invalid data")
	}
}
