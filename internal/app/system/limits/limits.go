// internal/app/system/limits/limits.go
package limits

// Request body size limits. These prevent memory exhaustion from
// oversized requests.
const (
	// MaxJSONBodySize caps JSON request bodies (signup, post create,
	// comments, payments).
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxUploadSize caps multipart submissions carrying cover images,
	// post images, or profile pictures.
	MaxUploadSize = 20 << 20 // 20 MB

	// MaxImageSize caps a single uploaded image file within a
	// multipart submission.
	MaxImageSize = 5 << 20 // 5 MB
)
