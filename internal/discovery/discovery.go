// Package discovery scans the input folder and classifies its entries.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/streamweld/streamweld/internal/media"
)

// OS metadata files excluded from discovery alongside dotfiles. The
// original name may carry a suffix (Thumbs.db:encryptable), so this is a
// prefix check.
var metadataPrefixes = []string{"Thumbs.db", "desktop.ini"}

// Scan lists the direct entries of dir (non-recursive), classifies each
// by extension, and returns the kept files plus the paths of excluded
// entries for diagnostics. Entries are returned in directory order,
// which os.ReadDir keeps sorted by name, so a given folder always yields
// the same task sequence.
func Scan(dir string) (files []media.File, excluded []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if entry.IsDir() || isExcluded(name) {
			excluded = append(excluded, full)
			continue
		}
		files = append(files, media.NewFile(full))
	}
	return files, excluded, nil
}

func isExcluded(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Videos filters the discovered files down to video entries, preserving
// order.
func Videos(files []media.File) []media.File {
	return ofKind(files, media.KindVideo)
}

// Audio filters the discovered files down to audio entries.
func Audio(files []media.File) []media.File {
	return ofKind(files, media.KindAudio)
}

// Subtitles filters the discovered files down to subtitle entries.
func Subtitles(files []media.File) []media.File {
	return ofKind(files, media.KindSubtitle)
}

func ofKind(files []media.File, kind media.Kind) []media.File {
	var out []media.File
	for _, f := range files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
