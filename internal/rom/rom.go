// Package rom loads CHIP-8 ROM images from plain files and from
// ZIP, 7z, gzip, tar.gz and RAR archives.
package rom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Magic bytes for archive format detection.
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// maxROMSize caps reads at the size of the CHIP-8 address space, no
// larger image can ever be loaded into the machine.
const maxROMSize = chip8.MemorySize

// romExtensions lists the recognized CHIP-8 ROM file extensions.
var romExtensions = []string{".ch8", ".c8", ".rom", ".bin"}

var (
	// ErrNoROMFile indicates an archive without a ROM file entry.
	ErrNoROMFile = errors.New("no ROM file found in archive")

	// ErrUnsupportedFormat indicates a file that is neither a ROM nor a
	// supported archive.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrROMTooLarge indicates content exceeding the address space size.
	ErrROMTooLarge = errors.New("ROM exceeds maximum size")
)

// format is the detected file format.
type format int

const (
	formatUnknown format = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// String implements fmt.Stringer.
func (f format) String() string {
	switch f {
	case formatRaw:
		return "raw"
	case formatZIP:
		return "zip"
	case format7z:
		return "7z"
	case formatGzip:
		return "gzip"
	case formatRAR:
		return "rar"
	default:
		return "unknown"
	}
}

// ROM is a loaded ROM image.
type ROM struct {
	Name string // file name of the image, for archives the entry name
	Data []byte
	Hash uint64 // fingerprint of the image data
}

// Loader reads ROM images from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the ROM image at the given path. Archives are detected by
// their magic bytes and the first entry with a ROM file extension is
// extracted, plain files load as they are.
func (l *Loader) Load(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	header = header[:n]

	fileFormat := detectFormat(header, path)
	l.logger.Debug("file format detected",
		log.String("file", path),
		log.String("format", fileFormat.String()),
	)

	var image *ROM
	switch fileFormat {
	case formatRaw:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking file: %w", err)
		}
		data, err := limitedRead(f)
		if err != nil {
			return nil, fmt.Errorf("reading ROM: %w", err)
		}
		image = &ROM{Name: filepath.Base(path), Data: data}

	case formatZIP:
		image, err = extractFromZIP(path)

	case format7z:
		image, err = extractFrom7z(path)

	case formatGzip:
		image, err = extractFromGzip(path)

	case formatRAR:
		image, err = extractFromRAR(path)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	image.Hash = xxhash.Sum64(image.Data)
	l.logger.Info("ROM loaded",
		log.String("name", image.Name),
		log.Int("size", len(image.Data)),
		log.String("hash", fmt.Sprintf("%016x", image.Hash)),
		log.String("system", string(arch.CHIP8System)),
	)
	return image, nil
}

// detectFormat determines the file format from the magic bytes of the
// header, falling back to the file extension.
func detectFormat(header []byte, path string) format {
	if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
		return formatZIP
	}
	if bytes.HasPrefix(header, magicRAR) {
		return formatRAR
	}
	if bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	default:
		if isROMFile(path) {
			return formatRaw
		}
		return formatUnknown
	}
}

// isROMFile reports whether a file name carries a ROM file extension.
func isROMFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range romExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// limitedRead reads up to the maximum ROM size from r and errors out on
// larger content.
func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, ErrROMTooLarge
	}
	return data, nil
}
