package domain

import "testing"

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"http://x/ubuntu.tgz", "ubuntu.tgz"},
		{"https://rootfs.example.org/2204/Ubuntu_22_04.sqsh", "Ubuntu_22_04.sqsh"},
		{"https://example.org/a.ero?token=abc#frag", "a.ero"},
		{"https://example.org/images/arch/", "arch"},
		{"https://example.org/my%20image.tar.gz", "my image.tar.gz"},
		{"https://example.org/", "download"},
		{"https://example.org", "download"},
		{"", "download"},
	}

	for _, tt := range tests {
		got := FilenameFromURL(tt.url)
		if got != tt.expected {
			t.Errorf("FilenameFromURL(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}

func TestImageFilename(t *testing.T) {
	img := Image{Name: "ubuntu", URL: "http://x/ubuntu.tgz"}
	if got := img.Filename(); got != "ubuntu.tgz" {
		t.Errorf("Filename() = %q, want %q", got, "ubuntu.tgz")
	}
}

func TestImageShortHash(t *testing.T) {
	img := Image{SHA256: "0123456789abcdef0123"}
	if got := img.ShortHash(); got != "0123456789ab" {
		t.Errorf("ShortHash() = %q", got)
	}

	short := Image{SHA256: "abc"}
	if got := short.ShortHash(); got != "abc" {
		t.Errorf("ShortHash() = %q, want %q", got, "abc")
	}
}

func TestFindImage(t *testing.T) {
	images := []Image{
		{Name: "ubuntu", URL: "http://x/first.tgz"},
		{Name: "fedora", URL: "http://x/fedora.tgz"},
		{Name: "ubuntu", URL: "http://x/second.tgz"},
	}

	img, ok := FindImage(images, "ubuntu")
	if !ok {
		t.Fatal("expected ubuntu to be found")
	}
	// First match wins
	if img.URL != "http://x/first.tgz" {
		t.Errorf("expected first match, got %q", img.URL)
	}

	if _, ok := FindImage(images, "debian"); ok {
		t.Error("expected debian to be missing")
	}

	if _, ok := FindImage(nil, "ubuntu"); ok {
		t.Error("expected lookup in empty manifest to fail")
	}

	// Names are matched exactly
	if _, ok := FindImage(images, "Ubuntu"); ok {
		t.Error("expected case-sensitive lookup")
	}
}

func TestNumberedFilename(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected string
	}{
		{"ubuntu.tgz", 1, "ubuntu (1).tgz"},
		{"ubuntu.tar.gz", 2, "ubuntu.tar (2).gz"},
		{"rootfs", 3, "rootfs (3)"},
		{".hidden", 1, ".hidden (1)"},
	}

	for _, tt := range tests {
		got := NumberedFilename(tt.name, tt.n)
		if got != tt.expected {
			t.Errorf("NumberedFilename(%q, %d) = %q, want %q", tt.name, tt.n, got, tt.expected)
		}
	}
}
