// Package media models files discovered in the input folder and their
// classification by extension.
package media

import (
	"path/filepath"
	"strings"
)

// Kind classifies a file in the input folder.
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
	KindSubtitle
	KindOther
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "other"
	}
}

// Extension allowlists. Matching is case-sensitive on purpose: the merge
// targets folders produced by tools that emit lowercase extensions, and an
// uppercase variant falls through to the usage check instead.
var (
	videoExtensions    = []string{".mp4", ".mkv", ".rmvb", ".flv"}
	audioExtensions    = []string{".mp3", ".flac", ".wav", ".mka"}
	subtitleExtensions = []string{".srt", ".ass", ".sup"}
)

// File is one classified entry of the input folder. Immutable once built.
type File struct {
	Path string
	Kind Kind
}

// NewFile classifies name and returns the file record for path.
func NewFile(path string) File {
	return File{Path: path, Kind: Classify(filepath.Base(path))}
}

// Base returns the file name component of the path.
func (f File) Base() string {
	return filepath.Base(f.Path)
}

// Stem returns the file name with its trailing extension removed.
func (f File) Stem() string {
	return Stem(f.Base())
}

// Ext returns the final dot-segment of the file name, without the dot.
// "A.eng.srt" yields "srt".
func (f File) Ext() string {
	parts := strings.Split(f.Base(), ".")
	return parts[len(parts)-1]
}

// Classify returns the kind for a bare file name.
func Classify(name string) Kind {
	for _, ext := range videoExtensions {
		if strings.HasSuffix(name, ext) {
			return KindVideo
		}
	}
	for _, ext := range audioExtensions {
		if strings.HasSuffix(name, ext) {
			return KindAudio
		}
	}
	for _, ext := range subtitleExtensions {
		if strings.HasSuffix(name, ext) {
			return KindSubtitle
		}
	}
	return KindOther
}

// Stem strips the trailing extension from a file name. Names without a
// real extension are returned unchanged: ".gitignore" has no stem to
// strip, and neither does "archive." nor "README".
func Stem(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) <= 1 {
		return name
	}
	if len(parts) == 2 && parts[0] == "" {
		return name
	}
	if parts[len(parts)-1] == "" {
		return name
	}
	return strings.Join(parts[:len(parts)-1], ".")
}
