// internal/app/system/bind/bind.go

// Package bind reads request input: JSON bodies with a size cap, and
// multipart image uploads persisted through the storage provider.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/apperr"
	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/limits"
)

// JSON decodes a JSON request body into dst, rejecting oversized bodies,
// unknown fields, and trailing garbage. Errors are client errors.
func JSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.New(http.StatusRequestEntityTooLarge, "Request body too large")
		}
		return apperr.Wrap(http.StatusBadRequest, "Invalid request body", err)
	}
	if dec.More() {
		return apperr.New(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// JSONField decodes a JSON document carried in a multipart form field.
// The web client sends post and profile payloads as a "data" field
// beside the image files.
func JSONField(r *http.Request, field string, dst any) error {
	raw := r.FormValue(field)
	if raw == "" {
		return apperr.New(http.StatusBadRequest, "Missing "+field+" field")
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return apperr.Wrap(http.StatusBadRequest, "Invalid "+field+" field", err)
	}
	return nil
}

// Multipart parses a multipart form within the global upload cap.
func Multipart(r *http.Request) error {
	if err := r.ParseMultipartForm(limits.MaxUploadSize); err != nil {
		return apperr.Wrap(http.StatusBadRequest, "Invalid multipart form", err)
	}
	return nil
}

// allowed image content types; everything else is rejected up front.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveImage stores one uploaded image under dir with a unique name and
// returns its public URL. The header's declared content type is checked
// against the image allow-list and the per-file size cap.
func SaveImage(r *http.Request, store storage.Store, fh *multipart.FileHeader, dir string) (string, error) {
	if fh.Size > limits.MaxImageSize {
		return "", apperr.New(http.StatusRequestEntityTooLarge, "Image too large")
	}
	contentType := fh.Header.Get("Content-Type")
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", apperr.New(http.StatusBadRequest, "Unsupported image type")
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(http.StatusBadRequest, "Unreadable image upload", err)
	}
	defer f.Close()

	path := uniquePath(dir, fh.Filename, ext)
	if err := store.Put(r.Context(), path, io.LimitReader(f, limits.MaxImageSize), &storage.PutOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return store.URL(path), nil
}

// SaveImages stores every file uploaded under the given form field.
func SaveImages(r *http.Request, store storage.Store, field, dir string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	urls := make([]string, 0, len(headers))
	for _, fh := range headers {
		url, err := SaveImage(r, store, fh, dir)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// FormFile returns the first file uploaded under field, or nil when the
// field is absent.
func FormFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File[field]; len(headers) > 0 {
		return headers[0]
	}
	return nil
}

// uniquePath builds dir/YYYY/MM/uuidprefix-name.ext, normalized to
// forward slashes for the storage provider.
func uniquePath(dir, filename, ext string) string {
	now := time.Now().UTC()
	base := filepath.Base(filename)
	if filepath.Ext(base) == "" {
		base += ext
	}
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(base))
	return filepath.ToSlash(filepath.Join(dir, fmt.Sprintf("%04d/%02d", now.Year(), now.Month()), name))
}

// sanitizeFilename keeps letters, digits, dots, hyphens, and underscores.
func sanitizeFilename(filename string) string {
	out := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
