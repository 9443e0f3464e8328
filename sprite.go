package birch

// Sprite is a positioned, rotatable, scalable quad that draws a
// TextureRegion. It keeps a cached vertex array of four corners laid out as
// described by the X1..V4 constants.
//
// Geometry is rebuilt lazily: setters that move an axis-aligned, unscaled
// sprite patch the cached corners directly; anything else marks the sprite
// dirty and Vertices recomputes the corners on its next call.
type Sprite struct {
	TextureRegion

	vertices         [SpriteSize]float32
	color            Color
	x, y             float32
	width, height    float32
	originX, originY float32
	rotation         float32
	scaleX, scaleY   float32
	dirty            bool
}

// newSprite returns an untextured white sprite with unit scale.
func newSprite() *Sprite {
	s := &Sprite{scaleX: 1, scaleY: 1, dirty: true}
	s.SetColor(ColorWhite)
	return s
}

// NewSprite returns a sprite showing the whole texture at its pixel size,
// with the origin at its center.
func NewSprite(t Texture) *Sprite {
	return NewSpriteXYWH(t, 0, 0, t.Width(), t.Height())
}

// NewSpriteXYWH returns a sprite showing the given pixel rectangle of the
// texture, sized to it, with the origin at its center.
func NewSpriteXYWH(t Texture, srcX, srcY, srcWidth, srcHeight int) *Sprite {
	s := newSprite()
	s.texture = t
	s.SetRegion(srcX, srcY, srcWidth, srcHeight)
	s.SetSize(float32(absInt(srcWidth)), float32(absInt(srcHeight)))
	s.SetOrigin(s.width/2, s.height/2)
	return s
}

// NewSpriteFromRegion returns a sprite showing the region, sized to its
// pixel size, with the origin at its center.
func NewSpriteFromRegion(r *TextureRegion) *Sprite {
	s := newSprite()
	s.SetRegionFrom(r)
	s.SetSize(float32(r.RegionWidth()), float32(r.RegionHeight()))
	s.SetOrigin(s.width/2, s.height/2)
	return s
}

// NewSpriteFrom returns a copy of src.
func NewSpriteFrom(src *Sprite) *Sprite {
	s := &Sprite{}
	s.Set(src)
	return s
}

// Set copies all state from src into s.
func (s *Sprite) Set(src *Sprite) {
	*s = *src
}

// SetBounds sets position and size. Prefer this over SetPosition followed
// by SetSize when changing both.
func (s *Sprite) SetBounds(x, y, width, height float32) {
	s.x, s.y = x, y
	s.width, s.height = width, height
	if s.dirty {
		return
	}
	if s.rotation != 0 || s.scaleX != 1 || s.scaleY != 1 {
		s.dirty = true
		return
	}
	s.writeAxisAligned()
}

// SetSize sets the size. The position is unchanged and the origin is not
// moved; call SetOriginCenter to re-center it.
func (s *Sprite) SetSize(width, height float32) {
	s.width, s.height = width, height
	if s.dirty {
		return
	}
	if s.rotation != 0 || s.scaleX != 1 || s.scaleY != 1 {
		s.dirty = true
		return
	}
	s.writeAxisAligned()
}

// writeAxisAligned writes the corners of the unrotated, unscaled quad.
func (s *Sprite) writeAxisAligned() {
	x2 := s.x + s.width
	y2 := s.y + s.height
	v := &s.vertices
	v[X1], v[Y1] = s.x, s.y
	v[X2], v[Y2] = s.x, y2
	v[X3], v[Y3] = x2, y2
	v[X4], v[Y4] = x2, s.y
}

// SetPosition moves the sprite's top-left corner (before rotation and
// scale) to (x, y).
func (s *Sprite) SetPosition(x, y float32) {
	s.Translate(x-s.x, y-s.y)
}

// SetOriginBasedPosition moves the sprite so its origin lands on (x, y).
func (s *Sprite) SetOriginBasedPosition(x, y float32) {
	s.SetPosition(x-s.originX, y-s.originY)
}

// SetX sets the x position.
func (s *Sprite) SetX(x float32) {
	s.TranslateX(x - s.x)
}

// SetY sets the y position.
func (s *Sprite) SetY(y float32) {
	s.TranslateY(y - s.y)
}

// SetCenterX centers the sprite horizontally on x.
func (s *Sprite) SetCenterX(x float32) {
	s.SetX(x - s.width/2)
}

// SetCenterY centers the sprite vertically on y.
func (s *Sprite) SetCenterY(y float32) {
	s.SetY(y - s.height/2)
}

// SetCenter centers the sprite on (x, y).
func (s *Sprite) SetCenter(x, y float32) {
	s.SetPosition(x-s.width/2, y-s.height/2)
}

// TranslateX moves the sprite horizontally.
func (s *Sprite) TranslateX(xAmount float32) {
	s.x += xAmount
	if s.dirty {
		return
	}
	if s.rotation != 0 || s.scaleX != 1 || s.scaleY != 1 {
		s.dirty = true
		return
	}
	v := &s.vertices
	v[X1] += xAmount
	v[X2] += xAmount
	v[X3] += xAmount
	v[X4] += xAmount
}

// TranslateY moves the sprite vertically.
func (s *Sprite) TranslateY(yAmount float32) {
	s.y += yAmount
	if s.dirty {
		return
	}
	if s.rotation != 0 || s.scaleX != 1 || s.scaleY != 1 {
		s.dirty = true
		return
	}
	v := &s.vertices
	v[Y1] += yAmount
	v[Y2] += yAmount
	v[Y3] += yAmount
	v[Y4] += yAmount
}

// Translate moves the sprite.
func (s *Sprite) Translate(xAmount, yAmount float32) {
	s.x += xAmount
	s.y += yAmount
	if s.dirty {
		return
	}
	if s.rotation != 0 || s.scaleX != 1 || s.scaleY != 1 {
		s.dirty = true
		return
	}
	v := &s.vertices
	v[X1] += xAmount
	v[Y1] += yAmount
	v[X2] += xAmount
	v[Y2] += yAmount
	v[X3] += xAmount
	v[Y3] += yAmount
	v[X4] += xAmount
	v[Y4] += yAmount
}

// SetColor sets the tint. All four corners share one packed color.
func (s *Sprite) SetColor(c Color) {
	s.color = c
	s.writePackedColor(c.ToFloatBits())
}

// SetAlpha sets the alpha of the tint.
func (s *Sprite) SetAlpha(a float32) {
	s.color.A = a
	s.writePackedColor(s.color.ToFloatBits())
}

// SetPackedColor sets the tint from a color packed by Color.ToFloatBits.
func (s *Sprite) SetPackedColor(packed float32) {
	s.color = ColorFromFloatBits(packed)
	s.writePackedColor(packed)
}

func (s *Sprite) writePackedColor(packed float32) {
	v := &s.vertices
	v[C1] = packed
	v[C2] = packed
	v[C3] = packed
	v[C4] = packed
}

// Color returns the tint, unpacked from the vertex data.
func (s *Sprite) Color() Color {
	return ColorFromFloatBits(s.vertices[C1])
}

// PackedColor returns the packed tint stored in the vertex data.
func (s *Sprite) PackedColor() float32 {
	return s.vertices[C1]
}

// SetOrigin sets the point, relative to the sprite's position, that
// rotation and scale are applied around.
func (s *Sprite) SetOrigin(originX, originY float32) {
	s.originX, s.originY = originX, originY
	s.dirty = true
}

// SetOriginCenter places the origin at the center of the sprite.
func (s *Sprite) SetOriginCenter() {
	s.originX, s.originY = s.width/2, s.height/2
	s.dirty = true
}

// SetRotation sets the rotation in degrees. Positive angles rotate
// clockwise on a y-down screen.
func (s *Sprite) SetRotation(degrees float32) {
	s.rotation = degrees
	s.dirty = true
}

// Rotate adds degrees to the rotation.
func (s *Sprite) Rotate(degrees float32) {
	if degrees == 0 {
		return
	}
	s.rotation += degrees
	s.dirty = true
}

// SetScale sets the scale factors, applied around the origin.
func (s *Sprite) SetScale(scaleX, scaleY float32) {
	s.scaleX, s.scaleY = scaleX, scaleY
	s.dirty = true
}

// SetUniformScale sets both scale factors to scale.
func (s *Sprite) SetUniformScale(scale float32) {
	s.SetScale(scale, scale)
}

// Scale adds amount to both scale factors.
func (s *Sprite) Scale(amount float32) {
	s.scaleX += amount
	s.scaleY += amount
	s.dirty = true
}

// Rotate90 rotates the texture coordinates by 90 degrees without changing
// the quad or the Rotation property.
func (s *Sprite) Rotate90(clockwise bool) {
	v := &s.vertices
	if clockwise {
		v[U1], v[U2], v[U3], v[U4] = v[U2], v[U3], v[U4], v[U1]
		v[V1], v[V2], v[V3], v[V4] = v[V2], v[V3], v[V4], v[V1]
	} else {
		v[U1], v[U2], v[U3], v[U4] = v[U4], v[U1], v[U2], v[U3]
		v[V1], v[V2], v[V3], v[V4] = v[V4], v[V1], v[V2], v[V3]
	}
}

// Vertices returns the sprite's vertex array, recomputing the corners if
// the sprite is dirty. The slice aliases the sprite's storage.
func (s *Sprite) Vertices() []float32 {
	if s.dirty {
		s.dirty = false
		s.computeCorners()
	}
	return s.vertices[:]
}

// computeCorners rebuilds the four corners from position, size, origin,
// scale and rotation.
func (s *Sprite) computeCorners() {
	c := quadCorners(s.x, s.y, s.originX, s.originY, s.width, s.height, s.scaleX, s.scaleY, s.rotation)
	v := &s.vertices
	v[X1], v[Y1] = c[0], c[1]
	v[X2], v[Y2] = c[2], c[3]
	v[X3], v[Y3] = c[4], c[5]
	v[X4], v[Y4] = c[6], c[7]
}

// BoundingRectangle returns the axis-aligned bounds of the transformed quad.
func (s *Sprite) BoundingRectangle() Rect {
	return boundsOf(s.Vertices())
}

// Draw submits the sprite to the batch.
func (s *Sprite) Draw(b Batch) {
	b.DrawVertices(s.texture, s.Vertices(), 0, SpriteSize)
}

// DrawAlpha submits the sprite with its alpha multiplied by alphaModulation.
func (s *Sprite) DrawAlpha(b Batch, alphaModulation float32) {
	old := s.color.A
	s.SetAlpha(old * alphaModulation)
	s.Draw(b)
	s.SetAlpha(old)
}

// X returns the x position.
func (s *Sprite) X() float32 { return s.x }

// Y returns the y position.
func (s *Sprite) Y() float32 { return s.y }

// Width returns the width, before scaling.
func (s *Sprite) Width() float32 { return s.width }

// Height returns the height, before scaling.
func (s *Sprite) Height() float32 { return s.height }

// OriginX returns the origin's x offset from the position.
func (s *Sprite) OriginX() float32 { return s.originX }

// OriginY returns the origin's y offset from the position.
func (s *Sprite) OriginY() float32 { return s.originY }

// Rotation returns the rotation in degrees.
func (s *Sprite) Rotation() float32 { return s.rotation }

// ScaleX returns the horizontal scale factor.
func (s *Sprite) ScaleX() float32 { return s.scaleX }

// ScaleY returns the vertical scale factor.
func (s *Sprite) ScaleY() float32 { return s.scaleY }

// --- Texture coordinate setters ---
//
// These shadow the TextureRegion setters so the vertex UVs follow every
// change to the region. Writing the canonical layout discards any Rotate90.

// SetRegion sets the region in pixels and updates the vertex UVs.
func (s *Sprite) SetRegion(x, y, width, height int) {
	s.TextureRegion.SetRegion(x, y, width, height)
	s.writeUVs()
}

// SetRegionUV sets the region in UV space and updates the vertex UVs.
func (s *Sprite) SetRegionUV(u, v, u2, v2 float32) {
	s.TextureRegion.SetRegionUV(u, v, u2, v2)
	s.writeUVs()
}

// SetRegionFrom copies texture and UVs from r and updates the vertex UVs.
func (s *Sprite) SetRegionFrom(r *TextureRegion) {
	s.TextureRegion.SetRegionFrom(r)
	s.writeUVs()
}

// SetRegionWithin sets the region relative to r and updates the vertex UVs.
func (s *Sprite) SetRegionWithin(r *TextureRegion, x, y, width, height int) {
	s.TextureRegion.SetRegionWithin(r, x, y, width, height)
	s.writeUVs()
}

// SetU sets U and updates the vertex UVs.
func (s *Sprite) SetU(u float32) {
	s.TextureRegion.SetU(u)
	s.vertices[U1] = u
	s.vertices[U2] = u
}

// SetV sets V and updates the vertex UVs.
func (s *Sprite) SetV(v float32) {
	s.TextureRegion.SetV(v)
	s.vertices[V1] = v
	s.vertices[V4] = v
}

// SetU2 sets U2 and updates the vertex UVs.
func (s *Sprite) SetU2(u2 float32) {
	s.TextureRegion.SetU2(u2)
	s.vertices[U3] = u2
	s.vertices[U4] = u2
}

// SetV2 sets V2 and updates the vertex UVs.
func (s *Sprite) SetV2(v2 float32) {
	s.TextureRegion.SetV2(v2)
	s.vertices[V2] = v2
	s.vertices[V3] = v2
}

// SetRegionX moves the left edge of the region and updates the vertex UVs.
func (s *Sprite) SetRegionX(x int) {
	s.TextureRegion.SetRegionX(x)
	s.writeUVs()
}

// SetRegionY moves the top edge of the region and updates the vertex UVs.
func (s *Sprite) SetRegionY(y int) {
	s.TextureRegion.SetRegionY(y)
	s.writeUVs()
}

// SetRegionWidth resizes the region and updates the vertex UVs.
func (s *Sprite) SetRegionWidth(width int) {
	s.TextureRegion.SetRegionWidth(width)
	s.writeUVs()
}

// SetRegionHeight resizes the region and updates the vertex UVs.
func (s *Sprite) SetRegionHeight(height int) {
	s.TextureRegion.SetRegionHeight(height)
	s.writeUVs()
}

// writeUVs writes the region's UVs in the canonical corner layout.
func (s *Sprite) writeUVs() {
	v := &s.vertices
	v[U1], v[V1] = s.u, s.v
	v[U2], v[V2] = s.u, s.v2
	v[U3], v[V3] = s.u2, s.v2
	v[U4], v[V4] = s.u2, s.v
}

// Flip mirrors the texture. The vertex UVs are swapped in place, so a
// previous Rotate90 is preserved.
func (s *Sprite) Flip(x, y bool) {
	s.TextureRegion.Flip(x, y)
	v := &s.vertices
	if x {
		v[U1], v[U3] = v[U3], v[U1]
		v[U2], v[U4] = v[U4], v[U2]
	}
	if y {
		v[V1], v[V3] = v[V3], v[V1]
		v[V2], v[V4] = v[V4], v[V2]
	}
}

// SetFlip sets the flip state on both axes, flipping only where the current
// state differs.
func (s *Sprite) SetFlip(x, y bool) {
	s.Flip(s.IsFlipX() != x, s.IsFlipY() != y)
}

// Scroll offsets the texture coordinates modulo 1 and rewrites the vertex
// UVs in the canonical layout.
func (s *Sprite) Scroll(xAmount, yAmount float32) {
	s.TextureRegion.Scroll(xAmount, yAmount)
	s.writeUVs()
}
