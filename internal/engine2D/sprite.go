package engine2D

import (
	"sort"

	"infinite-parallax/internal/parallax"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpriteNode is a textured child of a Container. Positions are in scene
// units with Y pointing up; Anchor is the fraction of the size the position
// addresses, (0,0) being the bottom-left corner.
type SpriteNode struct {
	name     string
	Image    string
	Texture  *rl.Texture2D
	Anchor   parallax.Vec2
	position parallax.Vec2
	size     parallax.Vec2
	depth    int
	Visible  bool
}

func (s *SpriteNode) Name() string                { return s.name }
func (s *SpriteNode) Position() parallax.Vec2     { return s.position }
func (s *SpriteNode) SetPosition(p parallax.Vec2) { s.position = p }
func (s *SpriteNode) Size() parallax.Vec2         { return s.size }
func (s *SpriteNode) Depth() int                  { return s.depth }

// Bounds returns the left, bottom, right and top edges in scene units.
func (s *SpriteNode) Bounds() (left, bottom, right, top float64) {
	left = s.position.X - s.Anchor.X*s.size.X
	bottom = s.position.Y - s.Anchor.Y*s.size.Y
	return left, bottom, left + s.size.X, bottom + s.size.Y
}

// Container owns sprite nodes and keeps them ordered back to front.
type Container struct {
	textures *TextureCache
	children []*SpriteNode
	sorted   bool
}

func NewContainer(textures *TextureCache) *Container {
	return &Container{textures: textures}
}

// AddSprite creates a sprite from opts and attaches it. The width is the
// texture's native width; the height is opts.Height when set.
func (c *Container) AddSprite(opts parallax.SpriteOptions) (parallax.Sprite, error) {
	tex, err := c.textures.Load(opts.Image)
	if err != nil {
		return nil, err
	}

	size := parallax.Vec2{X: float64(tex.Width), Y: float64(tex.Height)}
	if opts.Height > 0 {
		size.Y = opts.Height
	}

	node := &SpriteNode{
		name:     opts.Name,
		Image:    opts.Image,
		Texture:  tex,
		Anchor:   opts.Anchor,
		position: opts.Position,
		size:     size,
		depth:    opts.Depth,
		Visible:  true,
	}
	c.children = append(c.children, node)
	c.sorted = false
	return node, nil
}

func (c *Container) RemoveSprite(sprite parallax.Sprite) {
	for i, child := range c.children {
		if parallax.Sprite(child) == sprite {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// Children returns the sprites ordered back to front (lowest depth first).
func (c *Container) Children() []*SpriteNode {
	if !c.sorted {
		sort.SliceStable(c.children, func(i, j int) bool {
			return c.children[i].depth < c.children[j].depth
		})
		c.sorted = true
	}
	return c.children
}
