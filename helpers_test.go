package birch

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func assertVertexNear(t *testing.T, label string, got, want float32) {
	t.Helper()
	if !near(got, want) {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

// assertCorners checks the x/y slots of a SpriteSize vertex block against
// want, given as TL, BL, BR, TR pairs.
func assertCorners(t *testing.T, v []float32, want [8]float32) {
	t.Helper()
	slots := [8]int{X1, Y1, X2, Y2, X3, Y3, X4, Y4}
	names := [8]string{"X1", "Y1", "X2", "Y2", "X3", "Y3", "X4", "Y4"}
	for i, s := range slots {
		assertVertexNear(t, names[i], v[s], want[i])
	}
}

// expectPanic runs fn and checks that it panics with an error wrapping kind.
func expectPanic(t *testing.T, kind error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", kind)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v (%T) is not an error", r, r)
		}
		if !errors.Is(err, kind) {
			t.Fatalf("panic %v does not wrap %v", err, kind)
		}
	}()
	fn()
}

// --- fakes ---

type fakeTexture struct {
	w, h  int
	binds int
}

func newFakeTexture(w, h int) *fakeTexture { return &fakeTexture{w: w, h: h} }

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Bind()       { t.binds++ }

type fakeShader struct {
	compiled bool
	binds    int
	disposed bool
	matrices map[string]mgl32.Mat4
	ints     map[string]int
}

func newFakeShader() *fakeShader {
	return &fakeShader{
		compiled: true,
		matrices: make(map[string]mgl32.Mat4),
		ints:     make(map[string]int),
	}
}

func (s *fakeShader) Bind()            { s.binds++ }
func (s *fakeShader) IsCompiled() bool { return s.compiled }
func (s *fakeShader) Log() string {
	if s.compiled {
		return ""
	}
	return "syntax error"
}
func (s *fakeShader) SetUniformMatrix(name string, m mgl32.Mat4) { s.matrices[name] = m }
func (s *fakeShader) SetUniformi(name string, v int)             { s.ints[name] = v }
func (s *fakeShader) Dispose()                                   { s.disposed = true }

// renderCall is one Mesh.Render as seen by the fake backend.
type renderCall struct {
	vertices  []float32
	count     int
	shader    ShaderProgram
	projTrans mgl32.Mat4
	blending  bool
	blend     [4]BlendFactor
}

func (c renderCall) sprites() int { return len(c.vertices) / SpriteSize }

type fakeMesh struct {
	backend     *fakeBackend
	maxVertices int
	pending     []float32
	indices     []uint16
	disposed    bool
}

func (m *fakeMesh) SetVertices(vertices []float32, offset, count int) {
	m.pending = append(m.pending[:0], vertices[offset:offset+count]...)
}

func (m *fakeMesh) SetIndices(indices []uint16) {
	m.indices = append([]uint16(nil), indices...)
}

func (m *fakeMesh) Render(shader ShaderProgram, primitive Primitive, offset, count int) {
	call := renderCall{
		vertices: append([]float32(nil), m.pending...),
		count:    count,
		shader:   shader,
		blending: m.backend.blending,
		blend:    m.backend.blend,
	}
	if fs, ok := shader.(*fakeShader); ok {
		call.projTrans = fs.matrices[UniformProjTrans]
	}
	m.backend.renders = append(m.backend.renders, call)
}

func (m *fakeMesh) Dispose() { m.disposed = true }

type fakeBackend struct {
	w, h      int
	shader    *fakeShader
	shaderErr error
	meshes    []*fakeMesh
	renders   []renderCall
	blending  bool
	blend     [4]BlendFactor
	disables  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{w: 640, h: 480, shader: newFakeShader()}
}

func (b *fakeBackend) NewMesh(maxVertices, maxIndices int, attributes []VertexAttribute) Mesh {
	m := &fakeMesh{backend: b, maxVertices: maxVertices}
	b.meshes = append(b.meshes, m)
	return m
}

func (b *fakeBackend) NewDefaultShader() (ShaderProgram, error) {
	if b.shaderErr != nil {
		return nil, b.shaderErr
	}
	return b.shader, nil
}

func (b *fakeBackend) Size() (int, int) { return b.w, b.h }
func (b *fakeBackend) EnableBlending()  { b.blending = true }
func (b *fakeBackend) DisableBlending() {
	b.blending = false
	b.disables++
}
func (b *fakeBackend) SetBlendFunc(srcColor, dstColor, srcAlpha, dstAlpha BlendFactor) {
	b.blend = [4]BlendFactor{srcColor, dstColor, srcAlpha, dstAlpha}
}

// newTestBatch returns a batch over a fake backend.
func newTestBatch(t *testing.T, maxSprites int) (*SpriteBatch, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend()
	b, err := NewSpriteBatch(fb, BatchConfig{MaxSprites: maxSprites})
	if err != nil {
		t.Fatalf("NewSpriteBatch: %v", err)
	}
	return b, fb
}

// transformPoint applies the 2D affine part of m to (x, y).
func transformPoint(m mgl32.Mat4, x, y float32) (float32, float32) {
	p := m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return p[0], p[1]
}
