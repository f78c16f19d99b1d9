package valueobjects

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestDecodeUploadedImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "empty data should fail",
			data:    []byte{},
			wantErr: true,
		},
		{
			name:    "nil data should fail",
			data:    nil,
			wantErr: true,
		},
		{
			name:    "invalid image data should fail",
			data:    []byte{0x00, 0x01, 0x02},
			wantErr: true,
		},
		{
			name:    "truncated jpeg should fail",
			data:    []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0xFF, 0xD9},
			wantErr: true,
		},
		{
			name:    "valid jpeg",
			data:    encodeJPEG(t, 10, 8),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeUploadedImage("label.jpg", tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeUploadedImage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUploadedImage_JPEG(t *testing.T) {
	data := encodeJPEG(t, 10, 8)

	img, err := DecodeUploadedImage("front.jpg", data)
	if err != nil {
		t.Fatalf("Failed to decode image: %v", err)
	}

	t.Run("keeps filename and format", func(t *testing.T) {
		if img.Filename() != "front.jpg" {
			t.Errorf("Expected filename front.jpg, got %s", img.Filename())
		}
		if img.Format() != JPEG || !img.IsJPEG() {
			t.Errorf("Expected format JPEG, got %v", img.Format())
		}
	})

	t.Run("raster is width*height*3", func(t *testing.T) {
		r := img.Raster()
		if r.Width() != 10 || r.Height() != 8 {
			t.Errorf("Expected 10x8 raster, got %dx%d", r.Width(), r.Height())
		}
		if len(r.Pix()) != 10*8*3 {
			t.Errorf("Expected %d bytes, got %d", 10*8*3, len(r.Pix()))
		}
	})

	t.Run("payload forwards original bytes", func(t *testing.T) {
		payload, mimeType, err := img.Payload()
		if err != nil {
			t.Fatalf("Payload() error = %v", err)
		}
		if mimeType != "image/jpeg" {
			t.Errorf("Expected image/jpeg, got %s", mimeType)
		}
		if !bytes.Equal(payload, data) {
			t.Errorf("Expected JPEG payload to be the uploaded bytes")
		}
	})
}

func TestUploadedImage_PNGWithAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 20, A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("Failed to create test PNG: %v", err)
	}

	img, err := DecodeUploadedImage("back.png", buf.Bytes())
	if err != nil {
		t.Fatalf("Failed to decode image: %v", err)
	}

	if img.Format() != PNG {
		t.Errorf("Expected format PNG, got %v", img.Format())
	}

	want := []uint8{200, 10, 20, 1, 2, 3}
	if !bytes.Equal(img.Raster().Pix(), want) {
		t.Errorf("Expected alpha to be dropped, got %v", img.Raster().Pix())
	}

	payload, mimeType, err := img.Payload()
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	if mimeType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", mimeType)
	}
	if _, err := jpeg.Decode(bytes.NewReader(payload)); err != nil {
		t.Errorf("Expected payload to be a JPEG: %v", err)
	}
}

func TestRGBRaster_At(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	r := NewRGBRaster(src)

	if got := r.At(2, 1); got != (color.RGBA{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("At(2,1) = %v", got)
	}
	if got := r.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("Expected zero color outside bounds, got %v", got)
	}
	if r.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Unexpected bounds %v", r.Bounds())
	}
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to create test JPEG: %v", err)
	}
	return buf.Bytes()
}

// withDimensions rewrites the SOF0 header so the file claims width x height
// while the payload stays tiny.
func withDimensions(t *testing.T, data []byte, width, height int) []byte {
	t.Helper()
	out := append([]byte(nil), data...)
	for i := 0; i+8 < len(out); i++ {
		if out[i] == 0xFF && out[i+1] == 0xC0 {
			out[i+5], out[i+6] = byte(height>>8), byte(height)
			out[i+7], out[i+8] = byte(width>>8), byte(width)
			return out
		}
	}
	t.Fatalf("SOF0 marker not found")
	return nil
}

func TestDecodeUploadedImage_PixelLimit(t *testing.T) {
	t.Run("oversized header is rejected before decoding", func(t *testing.T) {
		data := withDimensions(t, encodeJPEG(t, 8, 8), 12000, 12000)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil || cfg.Width != 12000 || cfg.Height != 12000 {
			t.Fatalf("Expected patched header, got %+v %v", cfg, err)
		}

		_, err = DecodeUploadedImage("bomb.jpg", data)
		if !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("Expected ErrImageTooLarge, got %v", err)
		}
	})

	t.Run("custom limit", func(t *testing.T) {
		data := encodeJPEG(t, 20, 10)

		if _, err := DecodeUploadedImageWithLimit("a.jpg", data, 199); !errors.Is(err, ErrImageTooLarge) {
			t.Errorf("Expected ErrImageTooLarge, got %v", err)
		}
		if _, err := DecodeUploadedImageWithLimit("a.jpg", data, 200); err != nil {
			t.Errorf("Expected image at the limit to pass, got %v", err)
		}
	})
}
