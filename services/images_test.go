package services

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

// testPNG renders a solid PNG of the given size.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareImage_SmallImagePassesThrough(t *testing.T) {
	data := testPNG(t, 640, 480)

	prepared, err := PrepareImage(data)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if prepared.Mime != "image/png" {
		t.Errorf("mime = %q", prepared.Mime)
	}
	if prepared.Width != 640 || prepared.Height != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", prepared.Width, prepared.Height)
	}
	if !bytes.Equal(prepared.Data, data) {
		t.Error("small image must not be re-encoded")
	}
}

func TestPrepareImage_WideImageDownscaled(t *testing.T) {
	data := testPNG(t, 2400, 1200)

	prepared, err := PrepareImage(data)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if prepared.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", prepared.Width, maxImageWidth)
	}
	if prepared.Height != 960 {
		t.Errorf("height = %d, want 960 (aspect preserved)", prepared.Height)
	}
}

func TestPrepareImage_DownscaledGIFReportsJPEG(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2400, 10), color.Palette{
		color.RGBA{A: 255}, color.RGBA{R: 255, A: 255},
	})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test gif: %v", err)
	}

	prepared, err := PrepareImage(buf.Bytes())
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	// The resize path writes JPEG; mime and extension must match the bytes.
	if prepared.Mime != "image/jpeg" || prepared.Ext != ".jpg" {
		t.Errorf("mime/ext = %q/%q, want image/jpeg/.jpg", prepared.Mime, prepared.Ext)
	}
	if !bytes.HasPrefix(prepared.Data, []byte{0xff, 0xd8}) {
		t.Error("stored bytes are not JPEG")
	}
}

func TestPrepareImage_Rejections(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not an image", []byte("just some text, definitely not pixels")},
		{"truncated png", testPNG(t, 100, 100)[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrepareImage(tt.data); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestPrepareImage_SizeCap(t *testing.T) {
	big := make([]byte, maxImageBytes+1)
	if _, err := PrepareImage(big); err == nil {
		t.Error("oversized payload accepted")
	}
}
