package birch

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// KageShader is a ShaderProgram backed by an Ebitengine Kage shader. The
// batch texture is bound as image 0; Kage's Fragment receives the vertex
// color (straight alpha) as its color argument and must return a
// premultiplied color.
//
// Matrix uniforms other than the batch projection are passed as
// []float32; Uniforms may also be edited directly between flushes.
type KageShader struct {
	Uniforms map[string]any

	shader   *ebiten.Shader
	uniforms uniforms
}

// NewKageShader compiles src. Shaders should use //kage:unit pixels.
func NewKageShader(src []byte) (*KageShader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("birch: compile kage shader: %w", err)
	}
	return &KageShader{
		Uniforms: make(map[string]any),
		shader:   s,
		uniforms: newUniforms(),
	}, nil
}

func (s *KageShader) uniformSet() *uniforms { return &s.uniforms }
func (s *KageShader) kage() *KageShader     { return s }

// Shader returns the compiled Ebitengine shader, or nil after Dispose.
func (s *KageShader) Shader() *ebiten.Shader { return s.shader }

// Bind is a no-op; the mesh passes the shader to Ebitengine at render time.
func (s *KageShader) Bind() {}

// IsCompiled reports whether the shader is usable.
func (s *KageShader) IsCompiled() bool { return s.shader != nil }

// Log returns a status line for a disposed shader. Compile errors are
// returned by NewKageShader.
func (s *KageShader) Log() string {
	if s.shader == nil {
		return "kage shader disposed"
	}
	return ""
}

// SetUniformMatrix records the batch projection for the mesh and stores any
// other matrix in Uniforms as a []float32.
func (s *KageShader) SetUniformMatrix(name string, m mgl32.Mat4) {
	if name == UniformProjTrans {
		s.uniforms.projTrans = m
		return
	}
	s.Uniforms[name] = m[:]
}

// SetUniformi stores v in Uniforms. The texture unit is kept out because
// Ebitengine binds the batch texture as image 0.
func (s *KageShader) SetUniformi(name string, v int) {
	s.uniforms.ints[name] = v
	if name != UniformTexture {
		s.Uniforms[name] = v
	}
}

// Dispose deallocates the Ebitengine shader.
func (s *KageShader) Dispose() {
	if s.shader != nil {
		s.shader.Deallocate()
		s.shader = nil
	}
}

// --- built-in shaders ---

const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	c *= color
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

const outlineShaderSrc = `//kage:unit pixels
package main

var OutlineColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		return c * color.a
	}
	if imageSrc0At(src + vec2(1, 0)).a > 0 ||
		imageSrc0At(src + vec2(-1, 0)).a > 0 ||
		imageSrc0At(src + vec2(0, 1)).a > 0 ||
		imageSrc0At(src + vec2(0, -1)).a > 0 {
		return OutlineColor * color.a
	}
	return vec4(0)
}
`

// ColorMatrixShader applies a 4x5 color matrix to every sampled texel after
// the vertex tint. The matrix is row-major: [R_r, R_g, R_b, R_a, R_offset,
// G_r, ...].
type ColorMatrixShader struct {
	*KageShader
	matrix []float32
}

// NewColorMatrixShader returns a color matrix shader set to the identity.
func NewColorMatrixShader() (*ColorMatrixShader, error) {
	k, err := NewKageShader([]byte(colorMatrixShaderSrc))
	if err != nil {
		return nil, err
	}
	s := &ColorMatrixShader{KageShader: k, matrix: make([]float32, 20)}
	s.Uniforms["Matrix"] = s.matrix
	s.SetMatrix([20]float32{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	})
	return s, nil
}

// SetMatrix replaces the color matrix. Flush the batch first if quads
// already buffered should keep the old matrix.
func (s *ColorMatrixShader) SetMatrix(m [20]float32) {
	copy(s.matrix, m[:])
}

// Matrix returns the current color matrix.
func (s *ColorMatrixShader) Matrix() [20]float32 {
	var m [20]float32
	copy(m[:], s.matrix)
	return m
}

// SetBrightness offsets each color channel by b in [-1, 1].
func (s *ColorMatrixShader) SetBrightness(b float32) {
	s.SetMatrix([20]float32{
		1, 0, 0, 0, b,
		0, 1, 0, 0, b,
		0, 0, 1, 0, b,
		0, 0, 0, 1, 0,
	})
}

// SetContrast scales contrast. c=1 is normal, 0 is flat gray.
func (s *ColorMatrixShader) SetContrast(c float32) {
	t := (1 - c) / 2
	s.SetMatrix([20]float32{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	})
}

// SetSaturation scales saturation. s=1 is normal, 0 is grayscale.
func (s *ColorMatrixShader) SetSaturation(sat float32) {
	sr := (1 - sat) * 0.299
	sg := (1 - sat) * 0.587
	sb := (1 - sat) * 0.114
	s.SetMatrix([20]float32{
		sr + sat, sg, sb, 0, 0,
		sr, sg + sat, sb, 0, 0,
		sr, sg, sb + sat, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// OutlineShader draws a one pixel outline in a fixed color around the
// opaque texels of each quad. Regions need a transparent border of at
// least one pixel in the texture for the outline to show.
type OutlineShader struct {
	*KageShader
}

// NewOutlineShader returns an outline shader drawing in c.
func NewOutlineShader(c Color) (*OutlineShader, error) {
	k, err := NewKageShader([]byte(outlineShaderSrc))
	if err != nil {
		return nil, err
	}
	s := &OutlineShader{KageShader: k}
	s.SetColor(c)
	return s, nil
}

// SetColor sets the outline color.
func (s *OutlineShader) SetColor(c Color) {
	s.Uniforms["OutlineColor"] = []float32{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}
