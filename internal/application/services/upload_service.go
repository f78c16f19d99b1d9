package services

import (
	"io"
	"mime/multipart"
	"net/http"

	domainservices "packaging-report/internal/domain/services"
)

// ImagesField is the multipart field that carries the packaging photos.
const ImagesField = "images"

type UploadService struct{}

func NewUploadService() *UploadService {
	return &UploadService{}
}

// ParseFromRequest returns the uploaded files in submission order.
// r.ParseMultipartForm must have been called. Nothing is opened here.
func (s *UploadService) ParseFromRequest(r *http.Request) []domainservices.UploadedFile {
	if r.MultipartForm == nil {
		return nil
	}

	headers := r.MultipartForm.File[ImagesField]
	files := make([]domainservices.UploadedFile, 0, len(headers))
	for _, h := range headers {
		// ファイル名なしのパートはブラウザが空の選択で送るもの
		if h.Filename == "" && h.Size == 0 {
			continue
		}
		files = append(files, &multipartFile{header: h})
	}
	return files
}

type multipartFile struct {
	header *multipart.FileHeader
}

func (f *multipartFile) Name() string {
	return f.header.Filename
}

func (f *multipartFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}
