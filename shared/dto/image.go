package dto

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"turfbook/shared/constant"
	"turfbook/shared/failure"
	"turfbook/shared/validator"

	"github.com/google/uuid"
)

const imageMaxSizeMB = 5

var imageContentTypes = []string{"image/png", "image/jpeg", "image/webp"}

// ImageUpload is a single multipart image attached to a venue or turf.
type ImageUpload struct {
	Header *multipart.FileHeader
	File   multipart.File
}

// FromRequest reads the image form file from a multipart request. The caller closes File.
func (i *ImageUpload) FromRequest(r *http.Request) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)) //nolint:wrapcheck
	}

	file, header, err := r.FormFile(constant.FormFileImage)
	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to read %s: %w", constant.FormFileImage, err)) //nolint:wrapcheck
	}

	i.File = file
	i.Header = header

	return nil
}

func (i ImageUpload) Validate() error {
	return validator.ValidateFile(i.Header, imageContentTypes, imageMaxSizeMB) //nolint:wrapcheck
}

// ObjectName returns a random object name that keeps the original extension.
func (i ImageUpload) ObjectName() string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(i.Header.Filename))
}
