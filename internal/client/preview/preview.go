// Package preview hands out preview handles for selected images. A handle
// carries a small PNG thumbnail (as a data URI) and must be released once
// the image it describes is no longer shown.
package preview

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"  // decoder
	_ "image/jpeg" // decoder
	"image/png"
	"sync"

	_ "golang.org/x/image/bmp"  // decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // decoder
	_ "golang.org/x/image/webp" // decoder

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

// MaxThumbnailSide bounds the longer side of a thumbnail, in pixels.
const MaxThumbnailSide = 256

// Handle is one live preview. The zero value is not usable; get handles from
// Registry.Create.
type Handle struct {
	ID       string
	FileName string
	Size     int64
	// DataURI is a "data:image/png;base64,..." thumbnail, or "" when the
	// bytes could not be decoded as an image.
	DataURI string

	reg  *Registry
	once sync.Once
}

// Release frees the handle. Calling it more than once is harmless.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() { h.reg.drop(h.ID) })
}

// Registry tracks live handles.
type Registry struct {
	mu   sync.Mutex
	live map[string]*Handle
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[string]*Handle)}
}

// Create registers a handle for img. Thumbnail generation is best effort.
func (r *Registry) Create(img models.UploadedImage) *Handle {
	h := &Handle{
		ID:       uuid.NewString(),
		FileName: img.Name,
		Size:     img.Size,
		DataURI:  thumbnail(img.Data),
		reg:      r,
	}

	r.mu.Lock()
	r.live[h.ID] = h
	r.mu.Unlock()
	return h
}

// Live returns the number of handles not yet released.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Registry) drop(id string) {
	r.mu.Lock()
	delete(r.live, id)
	r.mu.Unlock()
}

func thumbnail(data []byte) string {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}

	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), MaxThumbnailSide)
	if w == 0 || h == 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// fit scales (w, h) down so the longer side is at most limit, keeping the
// aspect ratio. Images already small enough keep their size.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
