package birch

// AtlasSprite is a Sprite for an AtlasRegion that had whitespace stripped
// or was rotated by the packer. Position, size and origin are expressed in
// terms of the original, unstripped image: X and Y report where the
// untrimmed image would sit, while the drawn quad only covers the packed
// pixels.
//
// The sprite owns a private copy of its region; resizing rescales the copy's
// offsets and never touches the region it was created from.
type AtlasSprite struct {
	Sprite

	region          AtlasRegion
	originalOffsetX float32
	originalOffsetY float32
}

// NewAtlasSprite returns a sprite showing region at its original size with
// the origin at the center of the original image.
func NewAtlasSprite(region *AtlasRegion) *AtlasSprite {
	s := &AtlasSprite{}
	s.init(region)
	return s
}

// NewAtlasSpriteFrom returns an independent copy of src.
func NewAtlasSpriteFrom(src *AtlasSprite) *AtlasSprite {
	s := &AtlasSprite{}
	s.Set(src)
	return s
}

// init runs after the struct exists so the offset-aware setters below see a
// fully populated region.
func (s *AtlasSprite) init(region *AtlasRegion) {
	s.region = *NewAtlasRegionFrom(region)
	s.originalOffsetX = region.OffsetX
	s.originalOffsetY = region.OffsetY

	s.Sprite = *newSprite()
	s.Sprite.SetRegionFrom(&region.TextureRegion)
	s.SetOrigin(float32(region.OriginalWidth)/2, float32(region.OriginalHeight)/2)
	width := float32(region.RegionWidth())
	height := float32(region.RegionHeight())
	if region.Rotate {
		s.Sprite.Rotate90(false)
		s.Sprite.SetBounds(region.OffsetX, region.OffsetY, height, width)
	} else {
		s.Sprite.SetBounds(region.OffsetX, region.OffsetY, width, height)
	}
	s.Sprite.SetColor(ColorWhite)
}

// Set copies all state from src, including an independent region copy.
func (s *AtlasSprite) Set(src *AtlasSprite) {
	s.Sprite.Set(&src.Sprite)
	s.region = *NewAtlasRegionFrom(&src.region)
	s.originalOffsetX = src.originalOffsetX
	s.originalOffsetY = src.originalOffsetY
}

// SetPosition places the original image's top-left corner at (x, y).
func (s *AtlasSprite) SetPosition(x, y float32) {
	s.Sprite.SetPosition(x+s.region.OffsetX, y+s.region.OffsetY)
}

// SetX sets the original image's left edge.
func (s *AtlasSprite) SetX(x float32) {
	s.Sprite.SetX(x + s.region.OffsetX)
}

// SetY sets the original image's top edge.
func (s *AtlasSprite) SetY(y float32) {
	s.Sprite.SetY(y + s.region.OffsetY)
}

// SetCenter centers the original image on (x, y).
func (s *AtlasSprite) SetCenter(x, y float32) {
	s.SetPosition(x-s.Width()/2, y-s.Height()/2)
}

// SetCenterX centers the original image horizontally on x.
func (s *AtlasSprite) SetCenterX(x float32) {
	s.SetX(x - s.Width()/2)
}

// SetCenterY centers the original image vertically on y.
func (s *AtlasSprite) SetCenterY(y float32) {
	s.SetY(y - s.Height()/2)
}

// SetOriginBasedPosition moves the sprite so its origin lands on (x, y).
func (s *AtlasSprite) SetOriginBasedPosition(x, y float32) {
	s.SetPosition(x-s.Sprite.originX, y-s.Sprite.originY)
}

// SetBounds sets the original image's bounds. The whitespace offsets and
// the packed quad are scaled by the same ratio as the original size, so
// stripped margins stretch with the sprite.
func (s *AtlasSprite) SetBounds(x, y, width, height float32) {
	widthRatio := width / float32(s.region.OriginalWidth)
	heightRatio := height / float32(s.region.OriginalHeight)
	s.region.OffsetX = s.originalOffsetX * widthRatio
	s.region.OffsetY = s.originalOffsetY * heightRatio
	packedWidth := s.region.RotatedPackedWidth()
	packedHeight := s.region.RotatedPackedHeight()
	s.Sprite.SetBounds(x+s.region.OffsetX, y+s.region.OffsetY, packedWidth*widthRatio, packedHeight*heightRatio)
}

// SetSize resizes the original image, keeping X and Y.
func (s *AtlasSprite) SetSize(width, height float32) {
	s.SetBounds(s.X(), s.Y(), width, height)
}

// SetOrigin sets the origin relative to the original image's top-left.
func (s *AtlasSprite) SetOrigin(originX, originY float32) {
	s.Sprite.SetOrigin(originX-s.region.OffsetX, originY-s.region.OffsetY)
}

// SetOriginCenter places the origin at the center of the original image.
func (s *AtlasSprite) SetOriginCenter() {
	s.Sprite.SetOrigin(s.Sprite.width/2-s.region.OffsetX, s.Sprite.height/2-s.region.OffsetY)
}

// Flip mirrors the texture and the whitespace offsets, keeping the
// original image in place.
func (s *AtlasSprite) Flip(x, y bool) {
	if s.region.Rotate {
		s.Sprite.Flip(y, x)
	} else {
		s.Sprite.Flip(x, y)
	}

	oldOriginX := s.OriginX()
	oldOriginY := s.OriginY()
	oldOffsetX := s.region.OffsetX
	oldOffsetY := s.region.OffsetY

	widthRatio := s.WidthRatio()
	heightRatio := s.HeightRatio()

	s.region.OffsetX = s.originalOffsetX
	s.region.OffsetY = s.originalOffsetY
	s.region.Flip(x, y)
	s.originalOffsetX = s.region.OffsetX
	s.originalOffsetY = s.region.OffsetY
	s.region.OffsetX *= widthRatio
	s.region.OffsetY *= heightRatio

	s.Sprite.Translate(s.region.OffsetX-oldOffsetX, s.region.OffsetY-oldOffsetY)
	s.SetOrigin(oldOriginX, oldOriginY)
}

// IsFlipX reports whether the displayed image is mirrored horizontally.
// For a rotated region the texture axes are swapped, so this reads the
// atlas region rather than the sprite's UVs.
func (s *AtlasSprite) IsFlipX() bool { return s.region.IsFlipX() }

// IsFlipY reports whether the displayed image is mirrored vertically.
func (s *AtlasSprite) IsFlipY() bool { return s.region.IsFlipY() }

// SetFlip sets the flip state on both axes.
func (s *AtlasSprite) SetFlip(x, y bool) {
	s.Flip(s.IsFlipX() != x, s.IsFlipY() != y)
}

// Rotate90 rotates the texture coordinates and recomputes the offsets for
// the rotated packed image, keeping the origin in place.
func (s *AtlasSprite) Rotate90(clockwise bool) {
	s.Sprite.Rotate90(clockwise)

	oldOriginX := s.OriginX()
	oldOriginY := s.OriginY()
	oldOffsetX := s.region.OffsetX
	oldOffsetY := s.region.OffsetY

	widthRatio := s.WidthRatio()
	heightRatio := s.HeightRatio()

	if clockwise {
		s.region.OffsetX = float32(s.region.OriginalWidth)*widthRatio - oldOffsetY - float32(s.region.PackedHeight)*heightRatio
		s.region.OffsetY = oldOffsetX
	} else {
		s.region.OffsetX = oldOffsetY
		s.region.OffsetY = float32(s.region.OriginalHeight)*heightRatio - oldOffsetX - float32(s.region.PackedWidth)*widthRatio
	}

	s.Sprite.Translate(s.region.OffsetX-oldOffsetX, s.region.OffsetY-oldOffsetY)
	s.SetOrigin(oldOriginX, oldOriginY)
}

// X returns the original image's left edge.
func (s *AtlasSprite) X() float32 { return s.Sprite.X() - s.region.OffsetX }

// Y returns the original image's top edge.
func (s *AtlasSprite) Y() float32 { return s.Sprite.Y() - s.region.OffsetY }

// OriginX returns the origin relative to the original image.
func (s *AtlasSprite) OriginX() float32 { return s.Sprite.OriginX() + s.region.OffsetX }

// OriginY returns the origin relative to the original image.
func (s *AtlasSprite) OriginY() float32 { return s.Sprite.OriginY() + s.region.OffsetY }

// Width returns the width of the original image at the current scale of
// the packed quad.
func (s *AtlasSprite) Width() float32 {
	return s.Sprite.Width() / s.region.RotatedPackedWidth() * float32(s.region.OriginalWidth)
}

// Height returns the height of the original image at the current scale of
// the packed quad.
func (s *AtlasSprite) Height() float32 {
	return s.Sprite.Height() / s.region.RotatedPackedHeight() * float32(s.region.OriginalHeight)
}

// WidthRatio returns the packed quad's width over its natural width.
func (s *AtlasSprite) WidthRatio() float32 {
	return s.Sprite.Width() / s.region.RotatedPackedWidth()
}

// HeightRatio returns the packed quad's height over its natural height.
func (s *AtlasSprite) HeightRatio() float32 {
	return s.Sprite.Height() / s.region.RotatedPackedHeight()
}

// AtlasRegion returns the sprite's private region copy.
func (s *AtlasSprite) AtlasRegion() *AtlasRegion {
	return &s.region
}
