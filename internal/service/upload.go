package service

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Sobilo34/Tyma-server/internal/errs"
)

// MaxUploadSize is the largest accepted image payload (5 MiB).
const MaxUploadSize = 5 << 20

// allowedImageTypes maps accepted content types to their file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload carries an inbound file payload through the service layer.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// ImageMeta carries descriptive fields for an image record.
type ImageMeta struct {
	Title   string
	AltText string
	Caption string
}

// validateUpload rejects unsupported content types and oversized payloads
// before anything is written to storage or the database.
func validateUpload(u *Upload) error {
	fields := map[string]string{}
	if _, ok := allowedImageTypes[u.ContentType]; !ok {
		fields["file"] = fmt.Sprintf("unsupported content type %q, allowed types: %s", u.ContentType, strings.Join(allowedContentTypes(), ", "))
	}
	if u.Size > MaxUploadSize {
		fields["file"] = fmt.Sprintf("file size %d exceeds the %d byte limit", u.Size, MaxUploadSize)
	}
	if len(fields) > 0 {
		return errs.ValidationFields(fields)
	}
	return nil
}

func allowedContentTypes() []string {
	types := make([]string, 0, len(allowedImageTypes))
	for t := range allowedImageTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// imagePath builds the remote storage path for an uploaded image. The stored
// name is the image ID so repeated uploads never collide.
func imagePath(imageID string, u *Upload) string {
	return fmt.Sprintf("tyma_images/%s%s", imageID, allowedImageTypes[u.ContentType])
}
