package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is an uploaded 2D texture.
type Texture struct {
	ID     uint32
	Name   string
	Width  int
	Height int
}

// Upload creates a texture from a bottom-up RGBA image. Must be called with
// a current OpenGL context.
func Upload(name string, img *image.RGBA) (*Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture %s is empty", name)
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: texID, Name: name, Width: w, Height: h}, nil
}

// Load decodes PNG data and uploads it.
func Load(name string, data []byte) (*Texture, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	return Upload(name, img)
}

// Delete frees the GPU texture.
func (t *Texture) Delete() {
	if t != nil && t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
