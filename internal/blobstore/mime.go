package blobstore

import (
	"encoding/base64"
	"strings"
)

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// mimeForExtension maps a file extension to its MIME type. Unknown extensions
// default to JPEG so the gallery can still attempt display.
func mimeForExtension(ext string) string {
	if mime, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return "image/jpeg"
}

func dataURI(ext string, data []byte) string {
	var b strings.Builder
	b.Grow(len(data)*4/3 + 32)
	b.WriteString("data:")
	b.WriteString(mimeForExtension(ext))
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
