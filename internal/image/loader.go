// Package image provides utilities for loading and preparing images.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      httputil.FetchOptions
	cache      *imagecache.Cache
}

// NewSmartLoader creates a new SmartLoader using opts for remote fetches.
func NewSmartLoader(opts httputil.FetchOptions) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		fetch:      opts,
	}
}

// WithCache keeps downloaded images in cache. A nil cache disables caching.
func (l *SmartLoader) WithCache(cache *imagecache.Cache) *SmartLoader {
	l.cache = cache
	return l
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if l.cache != nil {
		data, err = l.cache.Fetch(ctx, url, l.fetch)
	} else {
		data, err = httputil.Fetch(ctx, url, l.fetch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path is a URL or a readable local image.
// URLs are only checked for their scheme; they are fetched later.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}

	return nil
}

// Thumbnail scales img down so that neither side exceeds maxDim, keeping the
// aspect ratio. Images already within bounds, and a maxDim of zero or less,
// return img unchanged. The result has non-premultiplied alpha.
func Thumbnail(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = max(1, h*maxDim/w)
	} else {
		nh = maxDim
		nw = max(1, w*maxDim/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
