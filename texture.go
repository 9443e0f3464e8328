package birch

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// boundImage is the image most recently bound by an ImageTexture. The
// ebiten mesh samples from it when rendering.
var boundImage *ebiten.Image

// ImageTexture is a Texture backed by an *ebiten.Image.
type ImageTexture struct {
	image *ebiten.Image
}

// NewImageTexture wraps img. Sub-images are supported; UVs are relative to
// the sub-image bounds.
func NewImageTexture(img *ebiten.Image) *ImageTexture {
	return &ImageTexture{image: img}
}

// LoadTexture reads an image file (PNG, JPEG or GIF) into a texture.
func LoadTexture(path string) (*ImageTexture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("birch: load texture %q: %w", path, err)
	}
	return NewImageTexture(img), nil
}

// Image returns the underlying image.
func (t *ImageTexture) Image() *ebiten.Image { return t.image }

// Width returns the width in pixels.
func (t *ImageTexture) Width() int {
	if t.image == nil {
		return 0
	}
	return t.image.Bounds().Dx()
}

// Height returns the height in pixels.
func (t *ImageTexture) Height() int {
	if t.image == nil {
		return 0
	}
	return t.image.Bounds().Dy()
}

// Bind makes the image the source for subsequent mesh renders.
func (t *ImageTexture) Bind() {
	boundImage = t.image
}
