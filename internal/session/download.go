package session

import (
	"strings"
	"unicode"
)

// MimeTypeText is the media type of downloaded posts.
const MimeTypeText = "text/plain"

const downloadSuffix = "-blog.txt"

// Download is a plain-text file ready to be saved.
type Download struct {
	Filename string
	MimeType string
	Data     []byte
}

// DownloadFilename derives the suggested filename for a post about topic:
// lower-cased, each whitespace run collapsed to one hyphen, "-blog.txt" appended.
func DownloadFilename(topic string) string {
	var sb strings.Builder

	inSpace := false
	for _, r := range topic {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte('-')
			}
			inSpace = true

			continue
		}

		inSpace = false
		sb.WriteRune(r)
	}

	return strings.ToLower(sb.String()) + downloadSuffix
}
