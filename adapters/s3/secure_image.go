package s3

// secureImageExtensions maps the MIME types accepted for listing images to
// their stored extension. Script-capable formats (svg in particular) are
// deliberately absent.
var secureImageExtensions = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/webp": "webp",
}

// CheckSecureImageAndGetExtension reports whether the MIME type is an
// allowed image format and returns the extension to store it under.
func CheckSecureImageAndGetExtension(mimeType string) (bool, string) {
	ext, ok := secureImageExtensions[mimeType]
	return ok, ext
}
