package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessPhotoJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	photo, err := ProcessPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessPhoto JPEG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", photo.MIME)
	}
	if len(photo.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPhotoPNG(t *testing.T) {
	data := createTestPNG(100, 100)
	photo, err := ProcessPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessPhoto PNG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", photo.MIME)
	}
}

func TestProcessPhotoDownscale(t *testing.T) {
	data := createTestJPEG(2048, 2048)
	photo, err := ProcessPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessPhoto large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessPhotoSmallImageNotUpscaled(t *testing.T) {
	data := createTestJPEG(50, 50)
	photo, err := ProcessPhoto(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessPhoto small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessPhotoInvalidFormat(t *testing.T) {
	_, err := ProcessPhoto(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessPhotoGIFRejected(t *testing.T) {
	// GIF magic bytes.
	_, err := ProcessPhoto(bytes.NewReader([]byte("GIF89a...")))
	if err == nil {
		t.Error("expected error for GIF")
	}
}
