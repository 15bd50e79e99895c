package services

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pocketbase/pocketbase/core"
)

// maxImageBytes caps uploads at 10 MB, same limit the old admin enforced.
const maxImageBytes = 10 << 20

// maxImageWidth is the widest stored variant; hero sliders render at 1920.
const maxImageWidth = 1920

// PreparedImage is an upload that passed validation and normalization.
type PreparedImage struct {
	Data   []byte
	Mime   string
	Ext    string
	Width  int
	Height int
}

// PrepareImage validates an uploaded file and downscales oversized images.
// Non-image payloads and files over the size cap are rejected.
func PrepareImage(data []byte) (*PreparedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("file exceeds %s limit", humanize.IBytes(maxImageBytes))
	}

	detected := mimetype.Detect(data)
	if !isImageMime(detected.String()) {
		return nil, fmt.Errorf("unsupported file type %s", detected.String())
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	mime := detected.String()
	ext := detected.Extension()

	bounds := img.Bounds()
	if bounds.Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
		data, mime, ext, err = encodeImage(img, mime)
		if err != nil {
			return nil, err
		}
		bounds = img.Bounds()
	}

	return &PreparedImage{
		Data:   data,
		Mime:   mime,
		Ext:    ext,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func isImageMime(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// encodeImage writes the resized image back out. Only PNG keeps its
// format; everything else (including gif/webp, which imaging cannot write)
// becomes JPEG, and the returned mime/ext reflect the bytes actually
// produced.
func encodeImage(img image.Image, mime string) ([]byte, string, string, error) {
	format, outMime, outExt := imaging.JPEG, "image/jpeg", ".jpg"
	if mime == "image/png" {
		format, outMime, outExt = imaging.PNG, "image/png", ".png"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", "", fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), outMime, outExt, nil
}

// StorageStats summarizes the image library for the admin dashboard.
type StorageStats struct {
	TotalImages        int            `json:"totalImages"`
	TotalSize          int64          `json:"totalSize"`
	TotalSizeFormatted string         `json:"totalSizeFormatted"`
	ByCategory         map[string]int `json:"byCategory"`
}

// ImageStorageStats walks the images collection and aggregates counts and
// sizes per category.
func ImageStorageStats(app core.App) (StorageStats, error) {
	stats := StorageStats{ByCategory: map[string]int{}}

	records, err := app.FindRecordsByFilter("images", "id != ''", "-created", 0, 0, nil)
	if err != nil {
		return stats, fmt.Errorf("list images: %w", err)
	}

	for _, record := range records {
		stats.TotalImages++
		stats.TotalSize += int64(record.GetInt("size"))
		if category := record.GetString("category"); category != "" {
			stats.ByCategory[category]++
		}
	}
	stats.TotalSizeFormatted = humanize.IBytes(uint64(stats.TotalSize))
	return stats, nil
}
