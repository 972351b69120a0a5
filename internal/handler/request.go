package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/service"
)

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Validation("body", "invalid JSON body")
	}
	return nil
}

// parsePagination reads page and per_page query parameters. Missing or
// malformed values fall back to the defaults.
func parsePagination(r *http.Request) (int, int) {
	page, perPage := 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil {
		perPage = v
	}
	return page, perPage
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// maxMultipartMemory bounds the in-memory portion of multipart parsing; the
// per-file size limit is enforced by the service layer.
const maxMultipartMemory = 8 << 20

// formUpload extracts the named file from a parsed multipart form. Returns
// nil when the field is absent.
func formUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Validation(field, "invalid file upload")
	}
	return uploadFromHeader(file, header), nil
}

func uploadFromHeader(file multipart.File, header *multipart.FileHeader) *service.Upload {
	contentType := header.Header.Get("Content-Type")
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	}
}

// formString returns a pointer to the form value, or nil when the field was
// not sent at all. An empty value is a deliberate clear, not an omission.
func formString(r *http.Request, field string) *string {
	if _, ok := r.MultipartForm.Value[field]; !ok {
		return nil
	}
	v := r.FormValue(field)
	return &v
}

// parseDate parses an RFC 3339 or YYYY-MM-DD value.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
