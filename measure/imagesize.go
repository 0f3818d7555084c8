package measure

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"strings"

	// Register decoders for DecodeConfig-based probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/folio/format"
)

// ErrImageMetricsUnavailable indicates an image's natural dimensions could
// not be determined. It is recoverable: the block's height falls back to the
// configured constant.
var ErrImageMetricsUnavailable = errors.New("folio: image dimensions unavailable")

// ImageSizer supplies the natural pixel dimensions of an image referenced by
// source URL.
type ImageSizer interface {
	NaturalSize(src string) (width, height int, err error)
}

// StaticSizer serves pre-known image dimensions from a map. Useful when
// dimensions were probed ahead of time or come from document metadata.
type StaticSizer struct {
	sizes map[string][2]int
}

// NewStaticSizer creates an empty sizer.
func NewStaticSizer() *StaticSizer {
	return &StaticSizer{sizes: make(map[string][2]int)}
}

// Add records the natural dimensions for src.
func (s *StaticSizer) Add(src string, width, height int) {
	s.sizes[src] = [2]int{width, height}
}

// NaturalSize returns the recorded dimensions for src.
func (s *StaticSizer) NaturalSize(src string) (int, int, error) {
	dims, ok := s.sizes[src]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrImageMetricsUnavailable, src)
	}
	return dims[0], dims[1], nil
}

// DecodeSizer probes image headers from a file system. Only local,
// slash-separated sources are probed; remote URLs report unavailable
// dimensions (no network I/O happens during measurement).
type DecodeSizer struct {
	fsys fs.FS
}

// NewDecodeSizer creates a sizer reading from fsys.
func NewDecodeSizer(fsys fs.FS) *DecodeSizer {
	return &DecodeSizer{fsys: fsys}
}

// NaturalSize opens src, sniffs its format from magic bytes, and decodes
// just the header for dimensions.
func (s *DecodeSizer) NaturalSize(src string) (int, int, error) {
	if isRemote(src) {
		return 0, 0, fmt.Errorf("%w: remote source %s", ErrImageMetricsUnavailable, src)
	}

	name := path.Clean(strings.TrimPrefix(src, "./"))
	if !fs.ValidPath(name) {
		return 0, 0, fmt.Errorf("%w: invalid path %s", ErrImageMetricsUnavailable, src)
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrImageMetricsUnavailable, src, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(16)
	if err != nil || format.DetectFromMagic(magic) == format.Unknown {
		return 0, 0, fmt.Errorf("%w: %s is not a recognized image", ErrImageMetricsUnavailable, src)
	}

	cfg, _, err := image.DecodeConfig(br)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrImageMetricsUnavailable, src, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: %s has degenerate dimensions", ErrImageMetricsUnavailable, src)
	}
	return cfg.Width, cfg.Height, nil
}

func isRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}
