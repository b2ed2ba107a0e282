package domain

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/samber/lo"
)

// fallbackFilename is used when a URL has no usable final path segment
const fallbackFilename = "download"

// Image represents one entry of the rootfs manifest
type Image struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
	Desc   string `json:"desc"`
	URL    string `json:"url"`
}

// Filename returns the local file name an image is saved under.
// It is the last segment of the URL path.
func (i Image) Filename() string {
	return FilenameFromURL(i.URL)
}

// ShortHash returns the first 12 characters of the hash for compact display
func (i Image) ShortHash() string {
	if len(i.SHA256) <= 12 {
		return i.SHA256
	}
	return i.SHA256[:12]
}

// String implements fmt.Stringer
func (i Image) String() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.URL)
}

// FilenameFromURL derives a file name from the path of rawURL
func FilenameFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	base := path.Base(strings.TrimRight(p, "/"))
	switch base {
	case "", ".", "..", "/":
		return fallbackFilename
	}
	return base
}

// FindImage returns the first image whose name matches exactly
func FindImage(images []Image, name string) (Image, bool) {
	return lo.Find(images, func(img Image) bool {
		return img.Name == name
	})
}

// NumberedFilename returns "base (n).ext" for the given file name.
// The extension is everything after the last dot.
func NumberedFilename(filename string, n int) string {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 {
		return fmt.Sprintf("%s (%d)", filename, n)
	}
	return fmt.Sprintf("%s (%d)%s", filename[:idx], n, filename[idx:])
}
