package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/testhelpers"
)

func pngUpload(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newImageUploadRequest(t *testing.T, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleImageUpload(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newImageUploadRequest(t, map[string]string{
		"category": "portfolio",
		"name":     "Объект на Тверской",
		"tags":     "офис, скс",
	}, "office.png", pngUpload(t, 640, 480))
	rec := httptest.NewRecorder()

	if err := HandleImageUpload(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	if resp["name"] != "Объект на Тверской" {
		t.Errorf("name = %v", resp["name"])
	}
	if resp["width"].(float64) != 640 || resp["height"].(float64) != 480 {
		t.Errorf("dimensions = %vx%v", resp["width"], resp["height"])
	}
}

func TestHandleImageUpload_Rejections(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name     string
		category string
		filename string
		data     []byte
	}{
		{"unknown category", "wallpapers", "a.png", pngUpload(t, 10, 10)},
		{"not an image", "portfolio", "a.txt", []byte("plain text")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newImageUploadRequest(t, map[string]string{"category": tt.category}, tt.filename, tt.data)
			rec := httptest.NewRecorder()
			if err := HandleImageUpload(app)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleImageList_CategoryFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	upload := func(category string) {
		req := newImageUploadRequest(t, map[string]string{"category": category}, category+".png", pngUpload(t, 10, 10))
		rec := httptest.NewRecorder()
		if err := HandleImageUpload(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("upload: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
		}
	}
	upload("slider")
	upload("portfolio")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/images?category=slider", nil)
	rec := httptest.NewRecorder()
	if err := HandleImageList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var images []map[string]any
	decodeJSON(t, rec, &images)
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	if images[0]["category"] != "slider" {
		t.Errorf("category = %v", images[0]["category"])
	}
}

func TestHandleImageList_NameSearch(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	for _, name := range []string{"Фасад офиса", "Серверная"} {
		req := newImageUploadRequest(t, map[string]string{
			"category": "portfolio",
			"name":     name,
		}, "photo.png", pngUpload(t, 10, 10))
		rec := httptest.NewRecorder()
		if err := HandleImageUpload(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("upload: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/images?q=Фасад", nil)
	rec := httptest.NewRecorder()
	if err := HandleImageList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var images []map[string]any
	decodeJSON(t, rec, &images)
	if len(images) != 1 {
		t.Fatalf("got %d images, want 1", len(images))
	}
	if images[0]["name"] != "Фасад офиса" {
		t.Errorf("name = %v", images[0]["name"])
	}
}

func TestHandleImageStats(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newImageUploadRequest(t, map[string]string{"category": "slider"}, "hero.png", pngUpload(t, 10, 10))
	rec := httptest.NewRecorder()
	if err := HandleImageUpload(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/images/stats", nil)
	rec = httptest.NewRecorder()
	if err := HandleImageStats(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var stats struct {
		TotalImages int            `json:"totalImages"`
		ByCategory  map[string]int `json:"byCategory"`
	}
	decodeJSON(t, rec, &stats)
	if stats.TotalImages != 1 {
		t.Errorf("totalImages = %d", stats.TotalImages)
	}
	if stats.ByCategory["slider"] != 1 {
		t.Errorf("byCategory = %v", stats.ByCategory)
	}
}
