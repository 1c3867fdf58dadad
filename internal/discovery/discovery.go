package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"timelapse-deflicker/internal/logging"
	"timelapse-deflicker/internal/mediatypes"
)

// FromDirectory lists the image files of a directory in lexicographic
// filename order. Entries are pre-filtered by extension and then confirmed
// by content sniffing; anything that does not sniff as an image is skipped.
// When the surviving set mixes more than one image subtype (e.g. JPEG and
// PNG in the same sequence), a single non-fatal warning is emitted since
// mixed sources usually indicate a stray file in the capture directory.
func FromDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", dir, err)
	}

	var paths []string
	subtypes := make(map[mediatypes.ImageType]bool)

	// os.ReadDir returns entries sorted by filename, which is the frame
	// ordering contract for directory sources.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)

		if mediatypes.ByExtension(strings.ToLower(filepath.Ext(name))) == mediatypes.ImageUnknown {
			logging.Debug("Skipping %s: unsupported extension", path)
			continue
		}

		subtype, err := mediatypes.Sniff(path)
		if err != nil {
			return nil, fmt.Errorf("failed to sniff %s: %w", path, err)
		}
		if subtype == mediatypes.ImageUnknown {
			logging.Debug("Skipping %s: content is not a supported image", path)
			continue
		}

		subtypes[subtype] = true
		paths = append(paths, path)
	}

	if len(subtypes) > 1 {
		names := make([]string, 0, len(subtypes))
		for s := range subtypes {
			names = append(names, string(s))
		}
		logging.Warn("Source directory mixes %d image subtypes (%s); results may be inconsistent across formats",
			len(subtypes), strings.Join(names, ", "))
	}

	return paths, nil
}

// FromListFile reads a newline-delimited list of frame paths. Blank lines
// and lines starting with '#' are ignored; the remaining lines are used
// verbatim, preserving file order. No sorting and no sniffing happen in
// this mode: the list is the user's explicit frame sequence.
func FromListFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list file %s: %w", path, err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file %s: %w", path, err)
	}

	return paths, nil
}
