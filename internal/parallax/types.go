package parallax

// TileHeight is the fixed visual height of every tile. Tile width comes from
// the texture's native width.
const TileHeight = 380

// BaseDepth is the render depth of layer 0; each following layer sits one
// step further back.
const BaseDepth = -15

type Vec2 struct {
	X, Y float64
}

// Config is fixed once Setup accepts it.
type Config struct {
	TileWidth       float64
	RepetitionCount int
	LayerCount      int
	OriginX         float64
	OriginY         float64
}

// TilesPerLayer is the strip length in tiles.
func (c Config) TilesPerLayer() int {
	return c.RepetitionCount + 1
}

// SpriteOptions describes a tile to the host container.
type SpriteOptions struct {
	Image    string
	Name     string
	Anchor   Vec2
	Height   float64
	Position Vec2
	Depth    int
}

// Sprite is a textured child node owned by a Container.
type Sprite interface {
	Name() string
	Position() Vec2
	SetPosition(Vec2)
	Size() Vec2
	Depth() int
}

// Container is the host scene node tiles are attached to.
type Container interface {
	AddSprite(opts SpriteOptions) (Sprite, error)
	RemoveSprite(sprite Sprite)
}

// Camera exposes the part of the host camera the recycler needs.
type Camera interface {
	X() float64
	ViewportWidth() float64
}

// Tile is one repeated background image inside a layer.
type Tile struct {
	Layer  int
	Slot   int
	Sprite Sprite
}

func (t *Tile) X() float64 {
	return t.Sprite.Position().X
}

func (t *Tile) Width() float64 {
	return t.Sprite.Size().X
}

func (t *Tile) setX(x float64) {
	pos := t.Sprite.Position()
	pos.X = x
	t.Sprite.SetPosition(pos)
}

// Layer is one depth plane of the effect.
type Layer struct {
	Index int
	Name  string
	Image string
	Tiles []*Tile
}

// Depth returns the render depth of the layer at index.
func Depth(index int) int {
	return BaseDepth - index
}

// SpeedDivisor returns how much slower than deltaX the layer at index moves.
func SpeedDivisor(index int) float64 {
	return float64((index + 1) * 2)
}
