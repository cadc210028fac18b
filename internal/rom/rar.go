package rom

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR extracts the first ROM file from a RAR archive.
func extractFromRAR(path string) (*ROM, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening rar archive: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rar archive: %w", err)
		}

		if header.IsDir || !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(r)
		if err != nil {
			return nil, fmt.Errorf("reading rar entry %s: %w", header.Name, err)
		}
		return &ROM{Name: filepath.Base(header.Name), Data: data}, nil
	}

	return nil, ErrNoROMFile
}
