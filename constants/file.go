package constants

import "strings"

// AllowedImageExtensions holds the receipt photo formats the upload endpoint
// and the OCR extractor accept.
var AllowedImageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
}

// MaxUploadBytes caps receipt photo uploads.
const MaxUploadBytes = 10 << 20 // 10MB

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsImageExt reports whether the (dotted or bare) extension is an accepted
// receipt photo format.
func IsImageExt(ext string) bool {
	_, ok := AllowedImageExtensions[NormalizeExt(ext)]
	return ok
}
