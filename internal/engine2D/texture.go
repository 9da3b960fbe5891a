package engine2D

import (
	"fmt"

	"infinite-parallax/internal/convert"
	"infinite-parallax/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextureCache loads each layer image once and shares it between the tiles
// of that layer.
type TextureCache struct {
	textures map[string]*rl.Texture2D
}

func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*rl.Texture2D)}
}

// Load returns the texture for an image name, resolving it through the asset roots.
func (c *TextureCache) Load(name string) (*rl.Texture2D, error) {
	if tex, ok := c.textures[name]; ok {
		return tex, nil
	}

	path := utils.FindTextureFile(name)
	if path == "" {
		return nil, fmt.Errorf("texture %q not found in %v", name, utils.AssetRoots)
	}

	img, err := convert.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}

	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	if tex.ID == 0 {
		return nil, fmt.Errorf("texture %q: upload to GPU failed", name)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	utils.Debug("Texture: loaded %s from %s (%dx%d)", name, path, tex.Width, tex.Height)
	c.textures[name] = &tex
	return &tex, nil
}

func (c *TextureCache) Unload() {
	for name, tex := range c.textures {
		rl.UnloadTexture(*tex)
		delete(c.textures, name)
	}
}
