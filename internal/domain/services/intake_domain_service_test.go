package services

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"go.uber.org/zap/zaptest"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/valueobjects"
)

type memoryFile struct {
	name    string
	data    []byte
	openErr error
	opened  int
}

func (f *memoryFile) Name() string {
	return f.name
}

func (f *memoryFile) Open() (io.ReadCloser, error) {
	f.opened++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func jpegBytes(t *testing.T, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to create test JPEG: %v", err)
	}
	return buf.Bytes()
}

func validFiles(t *testing.T, names ...string) []*memoryFile {
	t.Helper()
	files := make([]*memoryFile, 0, len(names))
	for i, n := range names {
		files = append(files, &memoryFile{name: n, data: jpegBytes(t, uint8(i*40))})
	}
	return files
}

func asUploaded(files []*memoryFile) []UploadedFile {
	out := make([]UploadedFile, 0, len(files))
	for _, f := range files {
		out = append(out, f)
	}
	return out
}

func TestIntakeDomainService_DecodeBatch(t *testing.T) {
	service := NewIntakeDomainService(0, zaptest.NewLogger(t))

	t.Run("preserves submission order", func(t *testing.T) {
		files := validFiles(t, "a.jpg", "b.jpg", "c.jpg")

		images, failures, err := service.DecodeBatch(asUploaded(files))
		if err != nil {
			t.Fatalf("DecodeBatch() error = %v", err)
		}
		if len(failures) != 0 {
			t.Errorf("Expected no failures, got %d", len(failures))
		}
		for i, want := range []string{"a.jpg", "b.jpg", "c.jpg"} {
			if images[i].Filename() != want {
				t.Errorf("images[%d] = %s, want %s", i, images[i].Filename(), want)
			}
		}
	})

	t.Run("files past the limit are never opened", func(t *testing.T) {
		files := validFiles(t, "1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg", "7.jpg")

		images, _, err := service.DecodeBatch(asUploaded(files))
		if err != nil {
			t.Fatalf("DecodeBatch() error = %v", err)
		}
		if len(images) != entities.MaxImages {
			t.Errorf("Expected %d images, got %d", entities.MaxImages, len(images))
		}
		for i, f := range files {
			wantOpened := 1
			if i >= entities.MaxImages {
				wantOpened = 0
			}
			if f.opened != wantOpened {
				t.Errorf("%s opened %d times, want %d", f.name, f.opened, wantOpened)
			}
		}
	})

	t.Run("one corrupt file does not abort the batch", func(t *testing.T) {
		files := validFiles(t, "front.jpg", "side.jpg", "back.jpg")
		files[1].data = []byte("not an image")

		images, failures, err := service.DecodeBatch(asUploaded(files))
		if err != nil {
			t.Fatalf("DecodeBatch() error = %v", err)
		}
		if len(images) != 2 {
			t.Errorf("Expected 2 images, got %d", len(images))
		}
		if len(failures) != 1 || failures[0].Filename != "side.jpg" {
			t.Errorf("Expected one failure for side.jpg, got %v", failures)
		}
		if images[0].Filename() != "front.jpg" || images[1].Filename() != "back.jpg" {
			t.Errorf("Expected remaining images in order")
		}
	})

	t.Run("open errors are reported per file", func(t *testing.T) {
		files := validFiles(t, "ok.jpg", "gone.jpg")
		files[1].openErr = errors.New("file already closed")

		images, failures, err := service.DecodeBatch(asUploaded(files))
		if err != nil {
			t.Fatalf("DecodeBatch() error = %v", err)
		}
		if len(images) != 1 || len(failures) != 1 {
			t.Fatalf("Expected 1 image and 1 failure, got %d and %d", len(images), len(failures))
		}
		if !errors.Is(failures[0], files[1].openErr) {
			t.Errorf("Expected failure to wrap the open error, got %v", failures[0])
		}
	})

	t.Run("all corrupt yields NoValidImages", func(t *testing.T) {
		files := []*memoryFile{
			{name: "x.jpg", data: []byte{0x00}},
			{name: "y.jpg", data: nil},
		}

		images, failures, err := service.DecodeBatch(asUploaded(files))
		if !errors.Is(err, entities.ErrNoValidImages) {
			t.Errorf("Expected ErrNoValidImages, got %v", err)
		}
		if images != nil {
			t.Errorf("Expected no images")
		}
		if len(failures) != 2 {
			t.Errorf("Expected 2 failures, got %d", len(failures))
		}
	})

	t.Run("empty batch yields NoValidImages", func(t *testing.T) {
		_, failures, err := service.DecodeBatch(nil)
		if !errors.Is(err, entities.ErrNoValidImages) {
			t.Errorf("Expected ErrNoValidImages, got %v", err)
		}
		if len(failures) != 0 {
			t.Errorf("Expected no failures")
		}
	})
}

func TestIntakeDomainService_PixelLimit(t *testing.T) {
	// テスト画像は4x4=16画素
	service := NewIntakeDomainService(15, zaptest.NewLogger(t))

	images, failures, err := service.DecodeBatch(asUploaded(validFiles(t, "big.jpg", "bigger.jpg")))
	if !errors.Is(err, entities.ErrNoValidImages) {
		t.Errorf("Expected ErrNoValidImages, got %v", err)
	}
	if images != nil {
		t.Errorf("Expected no images")
	}
	if len(failures) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(failures))
	}
	for _, f := range failures {
		if !errors.Is(f, valueobjects.ErrImageTooLarge) {
			t.Errorf("Expected %s to fail with ErrImageTooLarge, got %v", f.Filename, f.Cause)
		}
	}

	if NewIntakeDomainService(0, zaptest.NewLogger(t)).maxPixels != valueobjects.DefaultMaxPixels {
		t.Errorf("Expected default pixel limit")
	}
}
