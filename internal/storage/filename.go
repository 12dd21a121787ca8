package storage

import (
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions is the upload allow-list (lower case, without dot).
var AllowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"pdf": true, "doc": true, "docx": true, "txt": true, "zip": true,
}

var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"zip":  "application/zip",
}

var (
	unsafeChars    = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	windowsDevices = map[string]bool{
		"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true, "COM4": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "PRN": true, "NUL": true,
	}
)

func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AllowedFile reports whether the final suffix of name is on the allow-list.
func AllowedFile(name string) bool {
	return AllowedExtensions[extension(name)]
}

// MimeType maps the extension of name to a content type, application/octet-stream otherwise.
func MimeType(name string) string {
	if t, ok := mimeTypes[extension(name)]; ok {
		return t
	}
	return "application/octet-stream"
}

// SecureFilename reduces a client supplied filename to a safe single path element.
// It may return "" (for example for names made only of non-ASCII characters).
func SecureFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	name = b.String()
	for _, sep := range []string{"/", "\\", string(filepath.Separator)} {
		name = strings.ReplaceAll(name, sep, " ")
	}
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" && runtime.GOOS == "windows" {
		base := strings.ToUpper(strings.SplitN(name, ".", 2)[0])
		if windowsDevices[base] {
			name = "_" + name
		}
	}
	return name
}
