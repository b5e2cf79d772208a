package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrUnsupportedFormat is returned for files whose content is neither PNG nor JPEG.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge is returned for files above the configured size limit.
	ErrImageTooLarge = errors.New("image file too large")
)

// supportedTypes lists the MIME types accepted by Load, matching the
// extensions offered in the file picker. Subtypes such as APNG are accepted
// through their parent.
var supportedTypes = []string{"image/png", "image/jpeg"}

// ImageCache provides thread-safe caching of decoded images so that the text
// extractor and the segmenter can share one decode of the selected file.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an
// image is loaded, subsequent Load() calls for the same path return the cached
// copy without disk I/O.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(64 << 20)
//	img, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	defer cache.Evict("/path/to/image.png")
type ImageCache struct {
	mu       sync.RWMutex
	images   map[string]image.Image
	maxBytes uint64
}

// NewImageCache creates an empty image cache. Files larger than maxBytes are
// rejected with ErrImageTooLarge; zero disables the limit.
func NewImageCache(maxBytes uint64) *ImageCache {
	return &ImageCache{
		images:   make(map[string]image.Image),
		maxBytes: maxBytes,
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// The file content is sniffed before decoding; only PNG and JPEG are accepted
// regardless of the file extension. EXIF orientation is applied to JPEGs so
// that crops match what image viewers show.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns ErrImageTooLarge if the file exceeds the cache limit
//   - Returns ErrUnsupportedFormat if the content is not PNG or JPEG
//   - Returns error if the file cannot be decoded
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := LoadImage(path, c.maxBytes)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// LoadImage reads and decodes a PNG or JPEG file without caching it.
// A maxBytes of zero disables the size check.
func LoadImage(path string, maxBytes uint64) (image.Image, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrUnsupportedFormat)
	}
	if maxBytes > 0 && uint64(stat.Size()) > maxBytes {
		return nil, fmt.Errorf("%s is %s, limit is %s: %w", path,
			humanize.IBytes(uint64(stat.Size())), humanize.IBytes(maxBytes), ErrImageTooLarge)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect image type: %w", err)
	}
	if !isSupported(mtype) {
		return nil, fmt.Errorf("%s has type %s: %w", path, mtype.String(), ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s has no pixels: %w", path, ErrUnsupportedFormat)
	}
	return img, nil
}

// isSupported reports whether m or one of its parents is a supported type.
func isSupported(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		for _, t := range supportedTypes {
			if m.Is(t) {
				return true
			}
		}
	}
	return false
}
