package valueobjects

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

const jpegQuality = 90

// DefaultMaxPixels は展開後の画素数の上限（PILのデコンプレッション爆弾判定と同じ値）
const DefaultMaxPixels = 89_478_485

var ErrImageTooLarge = errors.New("image exceeds the pixel limit")

// UploadedImage is a user-submitted photo decoded to an RGB raster.
// It lives only for the duration of one analysis action.
type UploadedImage struct {
	filename string
	data     []byte
	format   ImageFormat
	raster   *RGBRaster
}

func DecodeUploadedImage(filename string, data []byte) (*UploadedImage, error) {
	return DecodeUploadedImageWithLimit(filename, data, DefaultMaxPixels)
}

// DecodeUploadedImageWithLimit reads the header first and refuses images whose
// width*height exceeds maxPixels before any pixel buffer is allocated.
func DecodeUploadedImageWithLimit(filename string, data []byte, maxPixels int) (*UploadedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d is more than %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	format, err := toImageFormat(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	return &UploadedImage{
		filename: filename,
		data:     data,
		format:   format,
		raster:   NewRGBRaster(img),
	}, nil
}

func (i *UploadedImage) Filename() string {
	return i.filename
}

func (i *UploadedImage) Data() []byte {
	return i.data
}

func (i *UploadedImage) Format() ImageFormat {
	return i.format
}

func (i *UploadedImage) Raster() *RGBRaster {
	return i.raster
}

func (i *UploadedImage) IsJPEG() bool {
	return i.format == JPEG
}

// Payload returns the bytes and MIME type handed to the model.
// JPEG sources are forwarded untouched, anything else is re-encoded from the RGB raster.
func (i *UploadedImage) Payload() ([]byte, string, error) {
	if i.IsJPEG() {
		return i.data, "image/jpeg", nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, i.raster, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}

func toImageFormat(name string) (ImageFormat, error) {
	switch name {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}
