// Package text renders short diagnostic strings (FPS overlays and the
// like) as textured quads. Strings are rasterized on the CPU, uploaded once
// and kept in a small LRU cache of textures.
package text

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/oxless/glapp/glx"
)

// cached textures per renderer; diagnostic text is a handful of strings
// that mostly repeat frame over frame
const cacheSize = 64

// pointToClip maps a font point size to clip-space units, tuned so 18pt
// text is comfortably readable in a [-1, 1] viewport.
const pointToClip = 0.0025

type stringTexture struct {
	id     uint32
	width  int
	height int
}

type Renderer struct {
	face  font.Face
	cache *lru.Cache[string, *stringTexture]

	program  uint32
	vao, vbo uint32

	uniProj  int32
	uniView  int32
	uniModel int32
	uniTex   int32
}

// NewRenderer builds the shader program and quad geometry. Requires a
// current GL context; registers its release with glx.OnShutdown.
func NewRenderer() (*Renderer, error) {
	program, err := newProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("build text shader: %w", err)
	}

	r := &Renderer{
		face:     basicfont.Face7x13,
		program:  program,
		uniProj:  gl.GetUniformLocation(program, gl.Str("proj\x00")),
		uniView:  gl.GetUniformLocation(program, gl.Str("view\x00")),
		uniModel: gl.GetUniformLocation(program, gl.Str("model\x00")),
		uniTex:   gl.GetUniformLocation(program, gl.Str("tex\x00")),
	}

	cache, _ := lru.NewWithEvict[string, *stringTexture](cacheSize, releaseTextureOnEviction)
	r.cache = cache

	// a unit quad drawn as a triangle strip
	quad := []float32{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 0, 0)

	gl.BindVertexArray(0)

	glx.OnShutdown(r.Release)

	return r, nil
}

// RenderString draws s at pos with the given point size against the
// supplied projection and view matrices. pos is the lower-left corner of
// the text quad.
func (r *Renderer) RenderString(s string, pos mgl32.Vec2, size float32, proj, view mgl32.Mat4) error {
	if s == "" {
		return nil
	}

	st, err := r.texture(s)
	if err != nil {
		return err
	}

	height := size * pointToClip
	width := height * float32(st.width) / float32(st.height)
	model := mgl32.Translate3D(pos.X(), pos.Y(), 0).
		Mul4(mgl32.Scale3D(width, height, 1))

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uniProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uniView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uniModel, 1, false, &model[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, st.id)
	gl.Uniform1i(r.uniTex, 0)

	// text blends over whatever is on screen; save and restore the state
	// this borrows
	blendWasOn := gl.IsEnabled(gl.BLEND)
	depthWasOn := gl.IsEnabled(gl.DEPTH_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	if !blendWasOn {
		gl.Disable(gl.BLEND)
	}
	if depthWasOn {
		gl.Enable(gl.DEPTH_TEST)
	}

	return nil
}

func (r *Renderer) texture(s string) (*stringTexture, error) {
	if st, ok := r.cache.Get(s); ok {
		return st, nil
	}

	img := rasterize(r.face, s)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	st := &stringTexture{
		id:     id,
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
	}
	r.cache.Add(s, st)

	return st, nil
}

func releaseTextureOnEviction(_ string, st *stringTexture) {
	gl.DeleteTextures(1, &st.id)
}

// Release drops all cached textures and the shader program.
func (r *Renderer) Release() {
	r.cache.Purge()
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
}
