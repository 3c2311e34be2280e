package imaging

import (
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/plate-finder/internal/detection"
)

// ImageCache provides thread-safe caching of decoded images and their split
// channels to avoid redundant disk reads.
//
// Entries are keyed by the exact path string passed to Load. Different paths
// to the same file (relative vs absolute) are cached separately.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	ch, err := cache.LoadChannels("/path/to/car.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := detection.NewPipeline(detection.DefaultConfig(), nil).Run(ctx, ch)
type ImageCache struct {
	mu       sync.RWMutex
	images   map[string]image.Image
	channels map[string]detection.Channels
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images:   make(map[string]image.Image),
		channels: make(map[string]detection.Channels),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG and GIF.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadChannels returns the red, green and blue sample buffers of the image at
// path, splitting and caching them on first use.
//
// The buffers are shared between callers and must be treated as read-only.
func (c *ImageCache) LoadChannels(path string) (detection.Channels, error) {
	c.mu.RLock()
	if ch, ok := c.channels[path]; ok {
		c.mu.RUnlock()
		return ch, nil
	}
	c.mu.RUnlock()

	img, err := c.Load(path)
	if err != nil {
		return detection.Channels{}, err
	}
	ch := SplitChannels(img)

	c.mu.Lock()
	c.channels[path] = ch
	c.mu.Unlock()

	return ch, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.channels = make(map[string]detection.Channels)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not cached, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	delete(c.channels, path)
	c.mu.Unlock()
}

// SplitChannels separates an image into three 8-bit sample buffers.
//
// The image is first converted to non-premultiplied NRGBA, so the samples are
// the stored colour values regardless of alpha. 16-bit sources are reduced to
// their high byte. The alpha channel is dropped. Buffer coordinates are
// relative to the image bounds, so (0,0) is always the top-left pixel.
func SplitChannels(img image.Image) detection.Channels {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	ch := detection.Channels{
		R: detection.NewBuffer[int](w, h),
		G: detection.NewBuffer[int](w, h),
		B: detection.NewBuffer[int](w, h),
	}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := y*w + x
			ch.R.Pix[i] = int(row[x*4])
			ch.G.Pix[i] = int(row[x*4+1])
			ch.B.Pix[i] = int(row[x*4+2])
		}
	}
	return ch
}
