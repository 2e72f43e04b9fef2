package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strings"
	"turfbook/shared/constant"
	"turfbook/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMegabyte = 1024 * 1024

var validate *val.Validate

// jsonFieldName reports fields by their json name so messages match the request payload.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
}

// Validate decodes a JSON body from r into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)
	if err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateFile checks an uploaded file against the allowed content types and a size limit in megabytes.
func ValidateFile(fileHeader *multipart.FileHeader, allowedTypes []string, maxSizeMB float64) error {
	if fileHeader == nil {
		return failure.BadRequestFromString(constant.FormFileImage + " is required")
	}

	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)
	if !slices.Contains(allowedTypes, contentType) {
		return failure.BadRequestFromString(fmt.Sprintf("file type must be one of %s", strings.Join(allowedTypes, " ")))
	}

	if float64(fileHeader.Size) > maxSizeMB*bytesPerMegabyte {
		return failure.BadRequestFromString(fmt.Sprintf("file size must not exceed %gMB", maxSizeMB))
	}

	return nil
}
