package birch

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenBackend draws batches into an *ebiten.Image. The batch's combined
// matrix is applied on the CPU, mapping normalized device coordinates onto
// the target's pixels, and the quads are submitted with DrawTriangles32 or,
// for a KageShader, DrawTrianglesShader32.
//
// Ebitengine images hold premultiplied alpha, so a source factor of
// BlendSrcAlpha is submitted as BlendOne.
type EbitenBackend struct {
	target *ebiten.Image

	blending bool
	src      BlendFactor
	dst      BlendFactor
	srcAlpha BlendFactor
	dstAlpha BlendFactor
}

// NewEbitenBackend creates a backend drawing into target.
func NewEbitenBackend(target *ebiten.Image) *EbitenBackend {
	return &EbitenBackend{
		target:   target,
		blending: true,
		src:      BlendSrcAlpha,
		dst:      BlendOneMinusSrcAlpha,
		srcAlpha: BlendSrcAlpha,
		dstAlpha: BlendOneMinusSrcAlpha,
	}
}

// SetTarget redirects subsequent renders. A nil target drops them.
func (e *EbitenBackend) SetTarget(target *ebiten.Image) { e.target = target }

// Target returns the current render target.
func (e *EbitenBackend) Target() *ebiten.Image { return e.target }

// Size returns the target size in pixels.
func (e *EbitenBackend) Size() (width, height int) {
	if e.target == nil {
		return 0, 0
	}
	b := e.target.Bounds()
	return b.Dx(), b.Dy()
}

// NewMesh creates a mesh rendering into this backend's target.
func (e *EbitenBackend) NewMesh(maxVertices, maxIndices int, attributes []VertexAttribute) Mesh {
	return &ebitenMesh{
		backend:  e,
		vertices: make([]float32, 0, maxVertices*vertexFloats(attributes)),
		indices:  make([]uint32, 0, maxIndices),
		verts:    make([]ebiten.Vertex, 0, maxVertices),
	}
}

// NewDefaultShader returns the fixed-function shader: texture sample times
// vertex color under the batch's projection.
func (e *EbitenBackend) NewDefaultShader() (ShaderProgram, error) {
	return &defaultShader{uniforms: newUniforms()}, nil
}

// EnableBlending restores the blend set by SetBlendFunc.
func (e *EbitenBackend) EnableBlending() { e.blending = true }

// DisableBlending makes subsequent renders overwrite the target.
func (e *EbitenBackend) DisableBlending() { e.blending = false }

// SetBlendFunc sets the blend factors used by subsequent renders.
func (e *EbitenBackend) SetBlendFunc(srcColor, dstColor, srcAlpha, dstAlpha BlendFactor) {
	e.src, e.dst, e.srcAlpha, e.dstAlpha = srcColor, dstColor, srcAlpha, dstAlpha
}

// Blend returns the ebiten blend matching the current state.
func (e *EbitenBackend) Blend() ebiten.Blend {
	if !e.blending {
		return ebiten.BlendCopy
	}
	return ebiten.Blend{
		BlendFactorSourceRGB:        ebitenBlendFactor(e.src, true),
		BlendFactorSourceAlpha:      ebitenBlendFactor(e.srcAlpha, true),
		BlendFactorDestinationRGB:   ebitenBlendFactor(e.dst, false),
		BlendFactorDestinationAlpha: ebitenBlendFactor(e.dstAlpha, false),
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}

func ebitenBlendFactor(f BlendFactor, source bool) ebiten.BlendFactor {
	switch f {
	case BlendZero:
		return ebiten.BlendFactorZero
	case BlendOne:
		return ebiten.BlendFactorOne
	case BlendSrcColor:
		return ebiten.BlendFactorSourceColor
	case BlendOneMinusSrcColor:
		return ebiten.BlendFactorOneMinusSourceColor
	case BlendSrcAlpha:
		if source {
			return ebiten.BlendFactorOne
		}
		return ebiten.BlendFactorSourceAlpha
	case BlendOneMinusSrcAlpha:
		return ebiten.BlendFactorOneMinusSourceAlpha
	case BlendDstAlpha:
		return ebiten.BlendFactorDestinationAlpha
	case BlendOneMinusDstAlpha:
		return ebiten.BlendFactorOneMinusDestinationAlpha
	case BlendDstColor:
		return ebiten.BlendFactorDestinationColor
	case BlendOneMinusDstColor:
		return ebiten.BlendFactorOneMinusDestinationColor
	}
	if source {
		return ebiten.BlendFactorOne
	}
	return ebiten.BlendFactorOneMinusSourceAlpha
}

func vertexFloats(attributes []VertexAttribute) int {
	n := 0
	for _, a := range attributes {
		n += a.Components
	}
	return n
}

// --- mesh ---

type ebitenMesh struct {
	backend  *EbitenBackend
	vertices []float32
	indices  []uint32
	verts    []ebiten.Vertex
	disposed bool
}

func (m *ebitenMesh) SetVertices(vertices []float32, offset, count int) {
	m.vertices = append(m.vertices[:0], vertices[offset:offset+count]...)
}

func (m *ebitenMesh) SetIndices(indices []uint16) {
	m.indices = m.indices[:0]
	for _, i := range indices {
		m.indices = append(m.indices, uint32(i))
	}
}

// Render projects the uploaded vertices onto the target and draws them with
// the image bound by the last Texture.Bind.
func (m *ebitenMesh) Render(shader ShaderProgram, primitive Primitive, offset, count int) {
	target := m.backend.target
	src := boundImage
	if m.disposed || target == nil || src == nil {
		Logger().Warn("ebiten mesh render skipped",
			slog.Bool("disposed", m.disposed),
			slog.Bool("target", target != nil),
			slog.Bool("texture", src != nil))
		return
	}

	projTrans := mgl32.Ident4()
	if u, ok := shader.(interface{ uniformSet() *uniforms }); ok {
		projTrans = u.uniformSet().projTrans
	}

	tb := target.Bounds()
	tw, th := float32(tb.Dx()), float32(tb.Dy())
	sb := src.Bounds()
	sx, sy := float32(sb.Min.X), float32(sb.Min.Y)
	sw, sh := float32(sb.Dx()), float32(sb.Dy())

	m.verts = m.verts[:0]
	for i := 0; i+VertexSize <= len(m.vertices); i += VertexSize {
		f := m.vertices[i : i+VertexSize]
		ndc := projTrans.Mul4x1(mgl32.Vec4{f[0], f[1], 0, 1})
		c := ColorFromFloatBits(f[2])
		m.verts = append(m.verts, ebiten.Vertex{
			DstX:   float32(tb.Min.X) + (ndc[0]+1)/2*tw,
			DstY:   float32(tb.Min.Y) + (1-ndc[1])/2*th,
			SrcX:   sx + f[3]*sw,
			SrcY:   sy + f[4]*sh,
			ColorR: c.R,
			ColorG: c.G,
			ColorB: c.B,
			ColorA: c.A,
		})
	}

	indices := m.indices[offset : offset+count]
	blend := m.backend.Blend()
	if k, ok := shader.(interface{ kage() *KageShader }); ok && k.kage().shader != nil {
		ks := k.kage()
		var op ebiten.DrawTrianglesShaderOptions
		op.Images[0] = src
		op.Uniforms = ks.Uniforms
		op.Blend = blend
		target.DrawTrianglesShader32(m.verts, indices, ks.shader, &op)
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = blend
	target.DrawTriangles32(m.verts, indices, src, &op)
}

func (m *ebitenMesh) Dispose() {
	m.disposed = true
	m.vertices = nil
	m.verts = nil
}

// --- default shader ---

// uniforms records what SpriteBatch uploads so the mesh can apply the
// projection on the CPU.
type uniforms struct {
	projTrans mgl32.Mat4
	ints      map[string]int
}

func newUniforms() uniforms {
	return uniforms{projTrans: mgl32.Ident4(), ints: make(map[string]int, 1)}
}

type defaultShader struct {
	uniforms uniforms
	disposed bool
}

func (s *defaultShader) uniformSet() *uniforms { return &s.uniforms }
func (s *defaultShader) Bind()                 {}
func (s *defaultShader) IsCompiled() bool      { return !s.disposed }
func (s *defaultShader) Log() string           { return "" }
func (s *defaultShader) Dispose()              { s.disposed = true }

func (s *defaultShader) SetUniformMatrix(name string, m mgl32.Mat4) {
	if name == UniformProjTrans {
		s.uniforms.projTrans = m
	}
}

func (s *defaultShader) SetUniformi(name string, v int) {
	s.uniforms.ints[name] = v
}
