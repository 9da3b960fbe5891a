package parallax

import (
	"fmt"

	"infinite-parallax/internal/utils"
)

// Controller tiles background images across depth layers and recycles
// tiles that scroll out of view. It is driven from a single update loop.
type Controller struct {
	container  Container
	config     Config
	configured bool
	layers     []*Layer
	byName     map[string][]int
}

func NewController(container Container) *Controller {
	return &Controller{
		container: container,
		byName:    make(map[string][]int),
	}
}

// Setup stores the configuration. It must be called exactly once, before AddLayers.
func (c *Controller) Setup(cfg Config) error {
	if c.configured {
		return ErrAlreadyConfigured
	}
	if cfg.TileWidth <= 0 {
		return fmt.Errorf("%w: tile width %v must be positive", ErrInvalidConfig, cfg.TileWidth)
	}
	if cfg.RepetitionCount < 0 {
		return fmt.Errorf("%w: repetition count %d is negative", ErrInvalidConfig, cfg.RepetitionCount)
	}
	if cfg.LayerCount < 1 {
		return fmt.Errorf("%w: layer count %d must be at least 1", ErrInvalidConfig, cfg.LayerCount)
	}

	c.config = cfg
	c.configured = true
	utils.Debug("Parallax: setup tileWidth=%.1f repetitions=%d layers=%d origin=(%.1f, %.1f)",
		cfg.TileWidth, cfg.RepetitionCount, cfg.LayerCount, cfg.OriginX, cfg.OriginY)
	return nil
}

// AddLayers builds RepetitionCount+1 tiles for each layer. imageNames[j] is
// the texture of layer j and backgroundNames[j] its name.
func (c *Controller) AddLayers(imageNames, backgroundNames []string) error {
	if !c.configured {
		return ErrNotConfigured
	}
	if c.layers != nil {
		return ErrLayersAlreadyAdded
	}
	if len(imageNames) != c.config.LayerCount || len(backgroundNames) != c.config.LayerCount {
		return fmt.Errorf("add layers: %d images, %d names for %d layers: %w",
			len(imageNames), len(backgroundNames), c.config.LayerCount, ErrLayerCountMismatch)
	}

	layers := make([]*Layer, c.config.LayerCount)
	for j := range layers {
		layers[j] = &Layer{
			Index: j,
			Name:  backgroundNames[j],
			Image: imageNames[j],
			Tiles: make([]*Tile, 0, c.config.TilesPerLayer()),
		}
	}

	for iteration := 0; iteration <= c.config.RepetitionCount; iteration++ {
		for j, layer := range layers {
			sprite, err := c.container.AddSprite(SpriteOptions{
				Image:  layer.Image,
				Name:   layer.Name,
				Anchor: Vec2{X: 0, Y: 0},
				Height: TileHeight,
				Position: Vec2{
					X: c.config.OriginX + float64(iteration)*c.config.TileWidth,
					Y: c.config.OriginY,
				},
				Depth: Depth(j),
			})
			if err != nil {
				c.detach(layers)
				return fmt.Errorf("add layers: layer %d (%s) tile %d: %w", j, layer.Name, iteration, err)
			}
			layer.Tiles = append(layer.Tiles, &Tile{Layer: j, Slot: iteration, Sprite: sprite})
		}
	}

	for _, layer := range layers {
		c.byName[layer.Name] = append(c.byName[layer.Name], layer.Index)
		utils.Debug("Parallax: layer %d '%s' built with %d tiles at depth %d", layer.Index, layer.Name, len(layer.Tiles), Depth(layer.Index))
	}
	c.layers = layers
	return nil
}

func (c *Controller) detach(layers []*Layer) {
	for _, layer := range layers {
		for _, tile := range layer.Tiles {
			c.container.RemoveSprite(tile.Sprite)
		}
		layer.Tiles = nil
	}
}

// MoveBackground shifts every tile of the layer named layerNames[i] by
// deltaX/((i+1)*2) and recycles tiles that left the camera's view.
func (c *Controller) MoveBackground(deltaX float64, camera Camera, layerNames []string) error {
	if !c.configured {
		return ErrNotConfigured
	}
	if len(layerNames) != c.config.LayerCount {
		return fmt.Errorf("move background: %d names for %d layers: %w",
			len(layerNames), c.config.LayerCount, ErrLayerCountMismatch)
	}

	targets := make([][]int, len(layerNames))
	for i, name := range layerNames {
		indices, ok := c.byName[name]
		if !ok {
			return fmt.Errorf("move background: %q: %w", name, ErrUnknownLayer)
		}
		targets[i] = indices
	}

	for i, indices := range targets {
		step := deltaX / SpeedDivisor(i)
		for _, index := range indices {
			for _, tile := range c.layers[index].Tiles {
				tile.setX(tile.X() + step)
				switch {
				case deltaX < 0:
					c.recycleAfter(tile, camera)
				case deltaX > 0:
					c.recycleBefore(tile, camera)
				}
			}
		}
	}
	return nil
}

func (c *Controller) stripLength(tile *Tile) float64 {
	return tile.Width() * float64(c.config.TilesPerLayer())
}

// recycleAfter jumps a tile that scrolled off the left edge to the far end of its strip.
func (c *Controller) recycleAfter(tile *Tile, camera Camera) {
	// The slack differs from recycleBefore ((w-2)*2 here, w+2 there). It looks
	// accidental but is kept so scrolling matches the established look.
	if tile.X()+(tile.Width()-2)*2 <= camera.X() {
		tile.setX(tile.X() + c.stripLength(tile))
		utils.Debug("Parallax: recycled layer %d slot %d forward to x=%.1f", tile.Layer, tile.Slot, tile.X())
	}
}

// recycleBefore jumps a tile that scrolled off the right edge back behind its strip.
func (c *Controller) recycleBefore(tile *Tile, camera Camera) {
	if tile.X()-tile.Width()-2 >= camera.X()+camera.ViewportWidth() {
		tile.setX(tile.X() - c.stripLength(tile))
		utils.Debug("Parallax: recycled layer %d slot %d back to x=%.1f", tile.Layer, tile.Slot, tile.X())
	}
}

func (c *Controller) Config() Config {
	return c.config
}

// Layers returns the layers in index order. Callers must not reposition tiles.
func (c *Controller) Layers() []*Layer {
	return c.layers
}

// LayerNames returns the background names in layer order, the form MoveBackground expects.
func (c *Controller) LayerNames() []string {
	names := make([]string, len(c.layers))
	for i, layer := range c.layers {
		names[i] = layer.Name
	}
	return names
}

func (c *Controller) Tiles(layer int) []*Tile {
	if layer < 0 || layer >= len(c.layers) {
		return nil
	}
	return c.layers[layer].Tiles
}

func (c *Controller) TileCount() int {
	count := 0
	for _, layer := range c.layers {
		count += len(layer.Tiles)
	}
	return count
}
