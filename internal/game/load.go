package game

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/assets"
	"github.com/Faultbox/cubetac/internal/engine/audio"
	"github.com/Faultbox/cubetac/internal/engine/shader"
	"github.com/Faultbox/cubetac/internal/engine/text"
	"github.com/Faultbox/cubetac/internal/engine/texture"
)

// FontMetrics is the glyph table of the HUD font.
const FontMetrics = "font.csv"

// resources are the assets loaded at startup.
type resources struct {
	files    *assets.Manager
	shaders  *assets.Base[*shader.Program]
	textures *assets.Base[*texture.Texture]
	font     *text.Font
}

// newFiles opens the asset directory and then the overlays on top of it.
func newFiles(dir string, overlays ...string) (*assets.Manager, error) {
	files := assets.NewManager()
	for _, d := range append([]string{dir}, overlays...) {
		if err := files.AddDir(d); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// loadFont parses the HUD font metrics. It needs no GL context.
func loadFont(files *assets.Manager) (*text.Font, error) {
	data, err := files.Load(path.Join(assets.FontsDir, FontMetrics))
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	glyphs, err := text.ParseMetrics(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", FontMetrics, err)
	}
	font, err := text.NewFont(glyphs, TextureFont)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", FontMetrics, err)
	}
	return font, nil
}

// loadResources compiles every shader and uploads every image. Requires a
// current GL context; any failure is fatal to the caller.
func loadResources(files *assets.Manager, log *zap.Logger) (*resources, error) {
	res := &resources{
		files:    files,
		shaders:  assets.NewBase[*shader.Program]("shader"),
		textures: assets.NewBase[*texture.Texture]("texture"),
	}

	vertNames, err := files.List(assets.ShadersDir, ".vert")
	if err != nil {
		return nil, err
	}
	for _, file := range vertNames {
		name := strings.TrimSuffix(file, path.Ext(file))
		prog, err := shader.Load(files, assets.ShadersDir, name)
		if err != nil {
			res.release()
			return nil, err
		}
		res.shaders.Add(name, prog)
	}
	if res.shaders.Len() == 0 {
		return nil, fmt.Errorf("no shaders under %s: %w", assets.ShadersDir, assets.ErrNotFound)
	}

	images, err := files.List(assets.ImagesDir, ".png")
	if err != nil {
		res.release()
		return nil, err
	}
	for _, name := range images {
		data, err := files.Load(path.Join(assets.ImagesDir, name))
		if err != nil {
			res.release()
			return nil, err
		}
		tex, err := texture.Load(name, data)
		if err != nil {
			res.release()
			return nil, err
		}
		res.textures.Add(name, tex)
	}
	for _, required := range []string{TextureCross, TextureCircle, TextureFont} {
		if !res.textures.Has(required) {
			res.release()
			return nil, fmt.Errorf("texture %s: %w", required, assets.ErrNotFound)
		}
	}

	res.font, err = loadFont(files)
	if err != nil {
		res.release()
		return nil, err
	}

	log.Info("assets loaded",
		zap.Strings("shaders", res.shaders.Names()),
		zap.Strings("textures", res.textures.Names()),
		zap.Int("glyphs", res.font.Len()),
	)
	return res, nil
}

// release frees GPU objects.
func (r *resources) release() {
	r.shaders.Each(func(_ string, p *shader.Program) { p.Delete() })
	r.textures.Each(func(_ string, t *texture.Texture) { t.Delete() })
}

// loadSounds decodes the effects into the audio manager. Missing files only
// disable the effect.
func loadSounds(files *assets.Manager, sfx *audio.Manager, log *zap.Logger) {
	for _, name := range []string{audio.SoundPlace, audio.SoundWin} {
		data, err := files.Load(path.Join(assets.SoundsDir, name+".wav"))
		if errors.Is(err, assets.ErrNotFound) {
			log.Warn("sound missing", zap.String("name", name))
			continue
		}
		if err == nil {
			err = sfx.Load(name, data)
		}
		if err != nil {
			log.Warn("sound not loaded", zap.String("name", name), zap.Error(err))
			continue
		}
		length, _ := sfx.Length(name)
		log.Debug("sound loaded", zap.String("name", name), zap.Duration("length", length))
	}
}
