package rom

import (
	"archive/zip"
	"fmt"
	"path/filepath"
)

// extractFromZIP extracts the first ROM file from a ZIP archive.
func extractFromZIP(path string) (*ROM, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		defer func() {
			_ = rc.Close()
		}()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, fmt.Errorf("reading zip entry %s: %w", f.Name, err)
		}
		return &ROM{Name: filepath.Base(f.Name), Data: data}, nil
	}

	return nil, ErrNoROMFile
}
