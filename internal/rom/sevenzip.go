package rom

import (
	"fmt"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// extractFrom7z extracts the first ROM file from a 7z archive.
func extractFrom7z(path string) (*ROM, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening 7z archive: %w", err)
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
			return nil, fmt.Errorf("opening 7z entry %s: %w", f.Name, err)
		}
		defer func() {
			_ = rc.Close()
		}()

		data, err := limitedRead(rc)
		if err != nil {
			return nil, fmt.Errorf("reading 7z entry %s: %w", f.Name, err)
		}
		return &ROM{Name: filepath.Base(f.Name), Data: data}, nil
	}

	return nil, ErrNoROMFile
}
