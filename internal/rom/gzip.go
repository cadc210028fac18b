package rom

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractFromGzip extracts a ROM from a gzip compressed file. Files
// named .tar.gz or .tgz are treated as tar archives, plain .gz files
// as a single compressed ROM.
func extractFromGzip(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer func() {
		_ = gz.Close()
	}()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		return extractFromTar(gz)
	}

	data, err := limitedRead(gz)
	if err != nil {
		return nil, fmt.Errorf("reading gzip stream: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !isROMFile(name) {
		return nil, ErrNoROMFile
	}
	return &ROM{Name: name, Data: data}, nil
}

// extractFromTar extracts the first ROM file from a tar stream.
func extractFromTar(r io.Reader) (*ROM, error) {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg || !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, fmt.Errorf("reading tar entry %s: %w", header.Name, err)
		}
		return &ROM{Name: filepath.Base(header.Name), Data: data}, nil
	}

	return nil, ErrNoROMFile
}
