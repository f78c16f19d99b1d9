package services

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/valueobjects"
)

// UploadedFile is a submitted blob that is only opened when intake reaches it.
type UploadedFile interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type IntakeDomainService struct {
	maxPixels int
	log       *zap.Logger
}

// NewIntakeDomainService builds the intake. Images above maxPixels are reported as
// decode failures; zero or less uses valueobjects.DefaultMaxPixels.
func NewIntakeDomainService(maxPixels int, log *zap.Logger) *IntakeDomainService {
	if maxPixels <= 0 {
		maxPixels = valueobjects.DefaultMaxPixels
	}
	return &IntakeDomainService{
		maxPixels: maxPixels,
		log:       log,
	}
}

// DecodeBatch decodes the first entities.MaxImages files in submission order.
// Files past the limit are never opened. A file that fails is reported and skipped.
// When nothing survives, the error is entities.ErrNoValidImages.
func (s *IntakeDomainService) DecodeBatch(files []UploadedFile) ([]*valueobjects.UploadedImage, []*entities.DecodeFailure, error) {
	if len(files) > entities.MaxImages {
		s.log.Info("Ignoring files past the limit",
			zap.Int("submitted", len(files)),
			zap.Int("limit", entities.MaxImages))
		files = files[:entities.MaxImages]
	}

	var images []*valueobjects.UploadedImage
	var failures []*entities.DecodeFailure

	for _, file := range files {
		img, err := s.decode(file)
		if err != nil {
			s.log.Warn("Failed to decode image",
				zap.String("file", file.Name()),
				zap.Error(err))
			failures = append(failures, entities.NewDecodeFailure(file.Name(), err))
			continue
		}

		s.log.Info("Image decoded",
			zap.String("file", img.Filename()),
			zap.String("format", string(img.Format())),
			zap.Int("width", img.Raster().Width()),
			zap.Int("height", img.Raster().Height()))

		images = append(images, img)
	}

	if len(images) == 0 {
		return nil, failures, entities.ErrNoValidImages
	}

	return images, failures, nil
}

func (s *IntakeDomainService) decode(file UploadedFile) (*valueobjects.UploadedImage, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return valueobjects.DecodeUploadedImageWithLimit(file.Name(), data, s.maxPixels)
}
