package media

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/syirilrakhulh/oddbit-player/constant"
)

// videoTypes covers containers that system mime tables often miss.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".ts":   "video/mp2t",
}

// ContentType derives the media type of a file from its extension, defaulting to video/mp4.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return constant.DefaultContentType
	}

	if t, ok := videoTypes[ext]; ok {
		return t
	}

	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}

	return constant.DefaultContentType
}
