package birch

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxSprites is the largest batch size whose quad indices fit in uint16.
const MaxSprites = 8191

// DefaultBatchSprites is used when BatchConfig.MaxSprites is zero.
const DefaultBatchSprites = 1000

// Batch is the drawing surface sprites and particle emitters submit to.
// SpriteBatch and CpuSpriteBatch implement it.
type Batch interface {
	Begin()
	End()
	Flush()
	IsDrawing() bool

	// DrawVertices appends pre-built quads in the SpriteSize layout.
	DrawVertices(t Texture, vertices []float32, offset, count int)

	Color() Color
	SetColor(c Color)
	PackedColor() float32
	SetPackedColor(packed float32)

	SetBlendFunction(src, dst BlendFactor)
	SetBlendFunctionSeparate(srcColor, dstColor, srcAlpha, dstAlpha BlendFactor)
	BlendSrcFunc() BlendFactor
	BlendDstFunc() BlendFactor
	BlendSrcFuncAlpha() BlendFactor
	BlendDstFuncAlpha() BlendFactor
	EnableBlending()
	DisableBlending()
	IsBlendingEnabled() bool
}

// BatchConfig configures NewSpriteBatch.
type BatchConfig struct {
	// MaxSprites is the number of quads buffered before a flush. Zero
	// selects DefaultBatchSprites; values above MaxSprites are rejected.
	MaxSprites int
	// Shader replaces the backend's default shader. The batch does not
	// dispose a shader it was given.
	Shader ShaderProgram
}

// quadIndexTable holds j, j+1, j+2, j+2, j+3, j for every quad up to
// MaxSprites. Built on first use and shared, read-only, by every batch.
var quadIndexTable []uint16

func quadIndices(sprites int) []uint16 {
	if quadIndexTable == nil {
		t := make([]uint16, MaxSprites*6)
		for i, j := 0, uint16(0); i < len(t); i, j = i+6, j+4 {
			t[i] = j
			t[i+1] = j + 1
			t[i+2] = j + 2
			t[i+3] = j + 2
			t[i+4] = j + 3
			t[i+5] = j
		}
		quadIndexTable = t
	}
	return quadIndexTable[:sprites*6]
}

// SpriteBatch buffers textured quads and submits them to the backend in as
// few draw calls as possible. A flush happens when the texture changes,
// the buffer fills, blend or shader state changes, or End is called.
//
// A SpriteBatch is not safe for concurrent use.
type SpriteBatch struct {
	backend Backend
	mesh    Mesh

	vertices     []float32
	idx          int
	lastTexture  Texture
	invTexWidth  float32
	invTexHeight float32

	drawing bool

	projection mgl32.Mat4
	transform  mgl32.Mat4
	combined   mgl32.Mat4

	blendingDisabled bool
	blendSrc         BlendFactor
	blendDst         BlendFactor
	blendSrcAlpha    BlendFactor
	blendDstAlpha    BlendFactor

	shader       ShaderProgram
	customShader ShaderProgram
	ownsShader   bool

	color       Color
	colorPacked float32

	// adjust, when set, is applied to every vertex position as it is
	// written. CpuSpriteBatch uses it to defer transform changes.
	adjust *Affine2

	// RenderCalls is the number of flushes since the last Begin.
	RenderCalls int
	// TotalRenderCalls is the number of flushes since creation.
	TotalRenderCalls int
	// MaxSpritesInBatch is the largest number of quads sent in one flush.
	MaxSpritesInBatch int
}

// NewSpriteBatch creates a batch drawing through backend. The projection
// defaults to a y-down orthographic view of the backend's current size.
func NewSpriteBatch(backend Backend, cfg BatchConfig) (*SpriteBatch, error) {
	b := &SpriteBatch{}
	if err := b.init(backend, cfg); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *SpriteBatch) init(backend Backend, cfg BatchConfig) error {
	if backend == nil {
		return fmt.Errorf("birch: new sprite batch: %w: nil backend", ErrInvalidArgument)
	}
	size := cfg.MaxSprites
	if size == 0 {
		size = DefaultBatchSprites
	}
	if size < 0 || size > MaxSprites {
		return fmt.Errorf("birch: new sprite batch: %w: max sprites %d outside 1..%d", ErrInvalidArgument, size, MaxSprites)
	}

	shader := cfg.Shader
	owns := false
	if shader == nil {
		s, err := backend.NewDefaultShader()
		if err != nil {
			return fmt.Errorf("birch: new sprite batch: default shader: %w", err)
		}
		if !s.IsCompiled() {
			s.Dispose()
			return fmt.Errorf("birch: new sprite batch: default shader did not compile: %s", s.Log())
		}
		shader, owns = s, true
	}

	b.backend = backend
	b.mesh = backend.NewMesh(size*4, size*6, SpriteAttributes)
	b.mesh.SetIndices(quadIndices(size))
	b.vertices = make([]float32, size*SpriteSize)
	b.shader = shader
	b.ownsShader = owns

	w, h := backend.Size()
	b.projection = ortho2D(0, 0, float32(w), float32(h))
	b.transform = mgl32.Ident4()

	b.blendSrc = BlendSrcAlpha
	b.blendDst = BlendOneMinusSrcAlpha
	b.blendSrcAlpha = BlendSrcAlpha
	b.blendDstAlpha = BlendOneMinusSrcAlpha

	b.color = ColorWhite
	b.colorPacked = whiteFloatBits
	return nil
}

// Begin starts a drawing session. Panics if a session is already open.
func (b *SpriteBatch) Begin() {
	if b.drawing {
		usagePanic(ErrInvalidOperation, "SpriteBatch.End must be called before Begin")
	}
	b.RenderCalls = 0
	b.currentShader().Bind()
	b.setupMatrices()
	b.drawing = true
}

// End flushes pending quads and closes the session. Panics if no session
// is open.
func (b *SpriteBatch) End() {
	if !b.drawing {
		usagePanic(ErrInvalidOperation, "SpriteBatch.Begin must be called before End")
	}
	if b.idx > 0 {
		b.Flush()
	}
	b.lastTexture = nil
	b.drawing = false
	if b.IsBlendingEnabled() {
		b.backend.DisableBlending()
	}
}

// IsDrawing reports whether a session is open.
func (b *SpriteBatch) IsDrawing() bool { return b.drawing }

// Flush submits buffered quads. If the batch has no texture or mesh to
// draw with, the buffered quads are logged and discarded.
func (b *SpriteBatch) Flush() {
	if b.idx == 0 {
		return
	}

	b.RenderCalls++
	b.TotalRenderCalls++
	sprites := b.idx / SpriteSize
	if sprites > b.MaxSpritesInBatch {
		b.MaxSpritesInBatch = sprites
	}

	if b.lastTexture == nil || b.mesh == nil {
		Logger().Error("sprite batch flush dropped",
			slog.Int("sprites", sprites),
			slog.Bool("texture", b.lastTexture != nil),
			slog.Bool("mesh", b.mesh != nil))
		b.idx = 0
		return
	}

	b.lastTexture.Bind()
	b.mesh.SetVertices(b.vertices, 0, b.idx)
	if b.blendingDisabled {
		b.backend.DisableBlending()
	} else {
		b.backend.EnableBlending()
		if b.blendSrc != BlendUnset {
			b.backend.SetBlendFunc(b.blendSrc, b.blendDst, b.blendSrcAlpha, b.blendDstAlpha)
		}
	}
	b.mesh.Render(b.currentShader(), PrimitiveTriangles, 0, sprites*6)
	b.idx = 0
}

// Dispose releases the mesh and, if the batch created it, the shader.
// Textures and caller-supplied shaders are left alone.
func (b *SpriteBatch) Dispose() {
	if b.mesh != nil {
		b.mesh.Dispose()
		b.mesh = nil
	}
	if b.ownsShader && b.shader != nil {
		b.shader.Dispose()
		b.shader = nil
	}
}

// --- color ---

// SetColor sets the tint applied to quads drawn by the texture and region
// draw methods. DrawVertices keeps the colors it is given.
func (b *SpriteBatch) SetColor(c Color) {
	b.color = c
	b.colorPacked = c.ToFloatBits()
}

// SetPackedColor sets the tint from a packed ABGR8888 float.
func (b *SpriteBatch) SetPackedColor(packed float32) {
	b.color = ColorFromFloatBits(packed)
	b.colorPacked = packed
}

// Color returns the current tint.
func (b *SpriteBatch) Color() Color { return b.color }

// PackedColor returns the current tint in packed form.
func (b *SpriteBatch) PackedColor() float32 { return b.colorPacked }

// --- blending ---

// SetBlendFunction sets the same factors for color and alpha.
func (b *SpriteBatch) SetBlendFunction(src, dst BlendFactor) {
	b.SetBlendFunctionSeparate(src, dst, src, dst)
}

// SetBlendFunctionSeparate sets the blend factors, flushing first if they
// change. BlendUnset as srcColor leaves the backend's blend function as is.
func (b *SpriteBatch) SetBlendFunctionSeparate(srcColor, dstColor, srcAlpha, dstAlpha BlendFactor) {
	if b.blendSrc == srcColor && b.blendDst == dstColor &&
		b.blendSrcAlpha == srcAlpha && b.blendDstAlpha == dstAlpha {
		return
	}
	b.Flush()
	b.blendSrc = srcColor
	b.blendDst = dstColor
	b.blendSrcAlpha = srcAlpha
	b.blendDstAlpha = dstAlpha
}

// BlendSrcFunc returns the source color factor.
func (b *SpriteBatch) BlendSrcFunc() BlendFactor { return b.blendSrc }

// BlendDstFunc returns the destination color factor.
func (b *SpriteBatch) BlendDstFunc() BlendFactor { return b.blendDst }

// BlendSrcFuncAlpha returns the source alpha factor.
func (b *SpriteBatch) BlendSrcFuncAlpha() BlendFactor { return b.blendSrcAlpha }

// BlendDstFuncAlpha returns the destination alpha factor.
func (b *SpriteBatch) BlendDstFuncAlpha() BlendFactor { return b.blendDstAlpha }

// EnableBlending turns blending back on, flushing if it was off.
func (b *SpriteBatch) EnableBlending() {
	if !b.blendingDisabled {
		return
	}
	b.Flush()
	b.blendingDisabled = false
}

// DisableBlending draws subsequent quads opaque, flushing if blending was on.
func (b *SpriteBatch) DisableBlending() {
	if b.blendingDisabled {
		return
	}
	b.Flush()
	b.blendingDisabled = true
}

// IsBlendingEnabled reports whether quads are blended.
func (b *SpriteBatch) IsBlendingEnabled() bool { return !b.blendingDisabled }

// --- matrices and shader ---

// ProjectionMatrix returns the projection matrix.
func (b *SpriteBatch) ProjectionMatrix() mgl32.Mat4 { return b.projection }

// TransformMatrix returns the transform matrix.
func (b *SpriteBatch) TransformMatrix() mgl32.Mat4 { return b.transform }

// CombinedMatrix returns projection x transform as last uploaded.
func (b *SpriteBatch) CombinedMatrix() mgl32.Mat4 { return b.combined }

// SetProjectionMatrix replaces the projection, flushing first while drawing.
func (b *SpriteBatch) SetProjectionMatrix(m mgl32.Mat4) {
	if b.drawing {
		b.Flush()
	}
	b.projection = m
	if b.drawing {
		b.setupMatrices()
	}
}

// SetTransformMatrix replaces the transform, flushing first while drawing.
func (b *SpriteBatch) SetTransformMatrix(m mgl32.Mat4) {
	if b.drawing {
		b.Flush()
	}
	b.transform = m
	if b.drawing {
		b.setupMatrices()
	}
}

func (b *SpriteBatch) setupMatrices() {
	b.combined = b.projection.Mul4(b.transform)
	s := b.currentShader()
	s.SetUniformMatrix(UniformProjTrans, b.combined)
	s.SetUniformi(UniformTexture, 0)
}

// SetShader switches to a custom shader; nil restores the default. The
// batch flushes first while drawing and does not take ownership.
func (b *SpriteBatch) SetShader(s ShaderProgram) {
	if s == b.customShader {
		return
	}
	if b.drawing {
		b.Flush()
	}
	b.customShader = s
	if b.drawing {
		b.currentShader().Bind()
		b.setupMatrices()
	}
}

// Shader returns the shader in use.
func (b *SpriteBatch) Shader() ShaderProgram { return b.currentShader() }

func (b *SpriteBatch) currentShader() ShaderProgram {
	if b.customShader != nil {
		return b.customShader
	}
	return b.shader
}

// --- quad writing ---

// reserve validates the call, switches texture or flushes as needed and
// returns the next SpriteSize floats of the buffer.
func (b *SpriteBatch) reserve(t Texture, op string) []float32 {
	if !b.drawing {
		usagePanic(ErrInvalidOperation, "SpriteBatch.Begin must be called before %s", op)
	}
	if t == nil {
		usagePanic(ErrInvalidArgument, "%s: texture is nil", op)
	}
	if t != b.lastTexture {
		b.switchTexture(t)
	} else if b.idx == len(b.vertices) {
		b.Flush()
	}
	v := b.vertices[b.idx : b.idx+SpriteSize]
	b.idx += SpriteSize
	return v
}

func (b *SpriteBatch) switchTexture(t Texture) {
	b.Flush()
	b.lastTexture = t
	b.invTexWidth = 1 / float32(t.Width())
	b.invTexHeight = 1 / float32(t.Height())
}

// putCorners writes positions (TL, BL, BR, TR) into a reserved quad.
func (b *SpriteBatch) putCorners(v []float32, c [8]float32) {
	if a := b.adjust; a != nil {
		for i := 0; i < 8; i += 2 {
			c[i], c[i+1] = a.Apply(c[i], c[i+1])
		}
	}
	v[X1], v[Y1] = c[0], c[1]
	v[X2], v[Y2] = c[2], c[3]
	v[X3], v[Y3] = c[4], c[5]
	v[X4], v[Y4] = c[6], c[7]
}

// putUVs writes the batch color and the canonical UV layout, where (u, v)
// lands on the top-left corner and (u2, v2) on the bottom-right.
func (b *SpriteBatch) putUVs(v []float32, u, vv, u2, v2 float32) {
	b.putTexCoords(v, u, vv, u, v2, u2, v2, u2, vv)
}

func (b *SpriteBatch) putTexCoords(v []float32, u1, v1, u2, v2, u3, v3, u4, v4 float32) {
	color := b.colorPacked
	v[C1], v[U1], v[V1] = color, u1, v1
	v[C2], v[U2], v[V2] = color, u2, v2
	v[C3], v[U3], v[V3] = color, u3, v3
	v[C4], v[U4], v[V4] = color, u4, v4
}

func axisAligned(x, y, width, height float32) [8]float32 {
	x2 := x + width
	y2 := y + height
	return [8]float32{x, y, x, y2, x2, y2, x2, y}
}

// --- texture draws ---

// Draw draws the whole texture at its pixel size with its top-left at (x, y).
func (b *SpriteBatch) Draw(t Texture, x, y float32) {
	if t == nil {
		usagePanic(ErrInvalidArgument, "Draw: texture is nil")
	}
	b.DrawSize(t, x, y, float32(t.Width()), float32(t.Height()))
}

// DrawSize draws the whole texture stretched to width x height.
func (b *SpriteBatch) DrawSize(t Texture, x, y, width, height float32) {
	v := b.reserve(t, "DrawSize")
	b.putCorners(v, axisAligned(x, y, width, height))
	b.putUVs(v, 0, 0, 1, 1)
}

// DrawUV draws the UV rectangle (u, v)-(u2, v2) of the texture.
func (b *SpriteBatch) DrawUV(t Texture, x, y, width, height, u, v, u2, v2 float32) {
	q := b.reserve(t, "DrawUV")
	b.putCorners(q, axisAligned(x, y, width, height))
	b.putUVs(q, u, v, u2, v2)
}

// DrawSrc draws the texel rectangle (srcX, srcY, srcWidth, srcHeight) at its
// pixel size.
func (b *SpriteBatch) DrawSrc(t Texture, x, y float32, srcX, srcY, srcWidth, srcHeight int) {
	v := b.reserve(t, "DrawSrc")
	u, vv, u2, v2 := b.srcUVs(srcX, srcY, srcWidth, srcHeight, false, false)
	b.putCorners(v, axisAligned(x, y, float32(srcWidth), float32(srcHeight)))
	b.putUVs(v, u, vv, u2, v2)
}

// DrawSrcFlip draws a texel rectangle stretched to width x height,
// optionally mirrored.
func (b *SpriteBatch) DrawSrcFlip(t Texture, x, y, width, height float32, srcX, srcY, srcWidth, srcHeight int, flipX, flipY bool) {
	v := b.reserve(t, "DrawSrcFlip")
	u, vv, u2, v2 := b.srcUVs(srcX, srcY, srcWidth, srcHeight, flipX, flipY)
	b.putCorners(v, axisAligned(x, y, width, height))
	b.putUVs(v, u, vv, u2, v2)
}

// DrawTransformed draws a texel rectangle scaled by (scaleX, scaleY) and
// rotated by rotation degrees around (originX, originY), which is relative
// to (x, y).
func (b *SpriteBatch) DrawTransformed(t Texture, x, y, originX, originY, width, height, scaleX, scaleY, rotation float32,
	srcX, srcY, srcWidth, srcHeight int, flipX, flipY bool) {
	v := b.reserve(t, "DrawTransformed")
	u, vv, u2, v2 := b.srcUVs(srcX, srcY, srcWidth, srcHeight, flipX, flipY)
	b.putCorners(v, quadCorners(x, y, originX, originY, width, height, scaleX, scaleY, rotation))
	b.putUVs(v, u, vv, u2, v2)
}

func (b *SpriteBatch) srcUVs(srcX, srcY, srcWidth, srcHeight int, flipX, flipY bool) (u, v, u2, v2 float32) {
	u = float32(srcX) * b.invTexWidth
	v = float32(srcY) * b.invTexHeight
	u2 = float32(srcX+srcWidth) * b.invTexWidth
	v2 = float32(srcY+srcHeight) * b.invTexHeight
	if flipX {
		u, u2 = u2, u
	}
	if flipY {
		v, v2 = v2, v
	}
	return u, v, u2, v2
}

// DrawVertices appends count floats of pre-built quads from vertices,
// starting at offset. count must be a whole number of sprites; quads are
// split across flushes when they do not fit.
func (b *SpriteBatch) DrawVertices(t Texture, vertices []float32, offset, count int) {
	if !b.drawing {
		usagePanic(ErrInvalidOperation, "SpriteBatch.Begin must be called before DrawVertices")
	}
	if t == nil {
		usagePanic(ErrInvalidArgument, "DrawVertices: texture is nil")
	}
	if count%SpriteSize != 0 {
		usagePanic(ErrInvalidArgument, "DrawVertices: count %d is not a multiple of %d", count, SpriteSize)
	}
	if offset < 0 || offset+count > len(vertices) {
		usagePanic(ErrInvalidArgument, "DrawVertices: range [%d, %d) outside %d vertices", offset, offset+count, len(vertices))
	}

	if t != b.lastTexture {
		b.switchTexture(t)
	}
	for count > 0 {
		if b.idx == len(b.vertices) {
			b.Flush()
		}
		n := min(len(b.vertices)-b.idx, count)
		dst := b.vertices[b.idx : b.idx+n]
		copy(dst, vertices[offset:offset+n])
		if a := b.adjust; a != nil {
			for i := 0; i < n; i += VertexSize {
				dst[i], dst[i+1] = a.Apply(dst[i], dst[i+1])
			}
		}
		b.idx += n
		offset += n
		count -= n
	}
}

// --- region draws ---

func mustRegion(r *TextureRegion, op string) {
	if r == nil {
		usagePanic(ErrInvalidArgument, "%s: region is nil", op)
	}
}

// DrawRegion draws the region at its pixel size.
func (b *SpriteBatch) DrawRegion(r *TextureRegion, x, y float32) {
	mustRegion(r, "DrawRegion")
	b.DrawRegionSize(r, x, y, float32(r.RegionWidth()), float32(r.RegionHeight()))
}

// DrawRegionSize draws the region stretched to width x height.
func (b *SpriteBatch) DrawRegionSize(r *TextureRegion, x, y, width, height float32) {
	mustRegion(r, "DrawRegionSize")
	v := b.reserve(r.texture, "DrawRegionSize")
	b.putCorners(v, axisAligned(x, y, width, height))
	b.putUVs(v, r.u, r.v, r.u2, r.v2)
}

// DrawRegionTransformed draws the region scaled and rotated (degrees)
// around (originX, originY), which is relative to (x, y).
func (b *SpriteBatch) DrawRegionTransformed(r *TextureRegion, x, y, originX, originY, width, height, scaleX, scaleY, rotation float32) {
	mustRegion(r, "DrawRegionTransformed")
	v := b.reserve(r.texture, "DrawRegionTransformed")
	b.putCorners(v, quadCorners(x, y, originX, originY, width, height, scaleX, scaleY, rotation))
	b.putUVs(v, r.u, r.v, r.u2, r.v2)
}

// DrawRegionRotated is DrawRegionTransformed with the texture turned a
// quarter turn inside the quad, clockwise or counter-clockwise.
func (b *SpriteBatch) DrawRegionRotated(r *TextureRegion, x, y, originX, originY, width, height, scaleX, scaleY, rotation float32, clockwise bool) {
	mustRegion(r, "DrawRegionRotated")
	v := b.reserve(r.texture, "DrawRegionRotated")
	b.putCorners(v, quadCorners(x, y, originX, originY, width, height, scaleX, scaleY, rotation))
	if clockwise {
		b.putTexCoords(v, r.u, r.v2, r.u2, r.v2, r.u2, r.v, r.u, r.v)
	} else {
		b.putTexCoords(v, r.u2, r.v, r.u, r.v, r.u, r.v2, r.u2, r.v2)
	}
}

// DrawRegionAffine draws a width x height quad mapped through transform.
func (b *SpriteBatch) DrawRegionAffine(r *TextureRegion, width, height float32, transform Affine2) {
	mustRegion(r, "DrawRegionAffine")
	v := b.reserve(r.texture, "DrawRegionAffine")
	t := transform
	b.putCorners(v, [8]float32{
		t.M02, t.M12,
		t.M01*height + t.M02, t.M11*height + t.M12,
		t.M00*width + t.M01*height + t.M02, t.M10*width + t.M11*height + t.M12,
		t.M00*width + t.M02, t.M10*width + t.M12,
	})
	b.putUVs(v, r.u, r.v, r.u2, r.v2)
}
