package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single glyph's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX, AtlasY float32
	Width, Height  float32
	// Offset from the pen position on the baseline
	BearingX, BearingY float32
	Advance            int
}

// FontAtlas holds the glyph metrics and, once uploaded, the GL texture.
type FontAtlas struct {
	TextureID  uint32
	Width      int
	Height     int
	LineHeight int
	Characters map[rune]FontCharacter
}

const atlasWidth = 512

// bakeAtlas rasterises printable ASCII from ttf at px pixels into a
// single-channel image packed in rows.
func bakeAtlas(ttf []byte, px int) (*FontAtlas, *image.Alpha, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type glyph struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}
	var glyphs []glyph
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, glyph{r, dr, mask, maskp, advance})
	}

	// First pass: pack rows to find the atlas height
	const padding = 1
	x, y, rowH := 0, 0, 0
	place := make([]image.Point, len(glyphs))
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if x+w+padding > atlasWidth {
			x, y, rowH = 0, y+rowH+padding, 0
		}
		place[i] = image.Pt(x, y)
		x += w + padding
		rowH = max(rowH, h)
	}
	atlasH := y + rowH + padding

	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH))
	atlas := &FontAtlas{
		Width:      atlasWidth,
		Height:     atlasH,
		LineHeight: face.Metrics().Height.Ceil(),
		Characters: make(map[rune]FontCharacter, len(glyphs)),
	}

	// Second pass: copy glyph masks and record metrics
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if w > 0 && h > 0 && g.mask != nil {
			dst := image.Rectangle{Min: place[i], Max: place[i].Add(image.Pt(w, h))}
			draw.Draw(img, dst, g.mask, g.maskp, draw.Src)
		}
		atlas.Characters[g.r] = FontCharacter{
			AtlasX:   float32(place[i].X),
			AtlasY:   float32(place[i].Y),
			Width:    float32(w),
			Height:   float32(h),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  int(math.Round(float64(g.advance) / 64.0)),
		}
	}
	return atlas, img, nil
}

// NewFontAtlas bakes the Go Mono font and uploads it as a GL_RED texture.
func NewFontAtlas(px int) (*FontAtlas, error) {
	atlas, img, err := bakeAtlas(gomono.TTF, px)
	if err != nil {
		return nil, err
	}
	gl.GenTextures(1, &atlas.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, atlas.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(atlas.Width), int32(atlas.Height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return atlas, nil
}

// Measure returns the width and tallest glyph height of text at scale.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			fc = a.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		maxH = max(maxH, fc.Height*scale)
	}
	return width, maxH
}

// appendQuads appends two triangles per glyph, 4 floats per vertex (x, y, u, v).
// y is the baseline in a top-left origin pixel space.
func (a *FontAtlas) appendQuads(dst []float32, text string, x, y, scale float32) []float32 {
	aw, ah := float32(a.Width), float32(a.Height)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			x0 := x + fc.BearingX*scale
			y0 := y - fc.BearingY*scale
			x1, y1 := x0+fc.Width*scale, y0+fc.Height*scale
			u0, v0 := fc.AtlasX/aw, fc.AtlasY/ah
			u1, v1 := (fc.AtlasX+fc.Width)/aw, (fc.AtlasY+fc.Height)/ah
			dst = append(dst,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return dst
}

// TextRenderer draws text lines in pixel coordinates with a top-left origin.
type TextRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao, vbo   uint32
	verts      []float32
}

func NewTextRenderer(atlas *FontAtlas, width, height int) (*TextRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader(Shaders, "text")
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{atlas: atlas, shader: shader}
	tr.SetViewport(width, height)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return tr, nil
}

func (tr *TextRenderer) SetViewport(width, height int) {
	tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// RenderLines draws lines starting with the first baseline at (x, y).
func (tr *TextRenderer) RenderLines(lines []string, x, y, scale float32, color mgl32.Vec3) {
	tr.verts = tr.verts[:0]
	step := float32(tr.atlas.LineHeight) * scale
	for _, line := range lines {
		tr.verts = tr.atlas.appendQuads(tr.verts, line, x, y, scale)
		y += step
	}
	if len(tr.verts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.shader.Use()
	tr.shader.SetVec3("textColor", color)
	tr.shader.SetMat4("projection", tr.projection)
	tr.shader.SetInt("text", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.atlas.TextureID)

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	// Orphan the buffer to avoid stalls on dynamic updates
	size := len(tr.verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(tr.verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(tr.verts)/4))
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (tr *TextRenderer) Dispose() {
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteTextures(1, &tr.atlas.TextureID)
	tr.shader.Delete()
}
