package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"infinite-parallax/internal/camera"
	"infinite-parallax/internal/parallax"
	"infinite-parallax/internal/utils"
)

const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultSpeed      = 240
	DefaultSmoothness = 1.0
	DefaultDeadzone   = 0.1
)

var ErrInvalidScene = errors.New("invalid scene")

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) applyDefaults() {
	if s.Resolution.Width <= 0 || s.Resolution.Height <= 0 {
		s.Resolution = Resolution{Width: DefaultWidth, Height: DefaultHeight}
	}
	if s.Camera.Mode == "" {
		s.Camera.Mode = string(camera.ModeKeys)
	}
	if s.Camera.Speed == 0 {
		s.Camera.Speed = DefaultSpeed
	}
	if s.Camera.Smoothness == nil {
		v := DefaultSmoothness
		s.Camera.Smoothness = &v
	}
	if s.Camera.Deadzone == nil {
		v := DefaultDeadzone
		s.Camera.Deadzone = &v
	}
	for i := range s.Layers {
		if s.Layers[i].Name == "" {
			s.Layers[i].Name = fmt.Sprintf("layer%d", i)
		}
	}
}

func (s *Scene) Validate() error {
	if s.TileWidth <= 0 {
		return fmt.Errorf("%w: tileWidth must be positive, got %v", ErrInvalidScene, s.TileWidth)
	}
	if s.Repetitions < 0 {
		return fmt.Errorf("%w: repetitions must not be negative, got %d", ErrInvalidScene, s.Repetitions)
	}
	if len(s.Layers) == 0 {
		return fmt.Errorf("%w: at least one layer is required", ErrInvalidScene)
	}
	seen := make(map[string]int, len(s.Layers))
	for i, layer := range s.Layers {
		if layer.Image == "" {
			return fmt.Errorf("%w: layer %d has no image", ErrInvalidScene, i)
		}
		if prev, ok := seen[layer.Name]; ok {
			return fmt.Errorf("%w: layers %d and %d share the name %q", ErrInvalidScene, prev, i, layer.Name)
		}
		seen[layer.Name] = i
	}
	if _, err := camera.ParseMode(s.Camera.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if s.Camera.Speed < 0 {
		return fmt.Errorf("%w: camera speed must not be negative", ErrInvalidScene)
	}
	if v := *s.Camera.Smoothness; v <= 0 || v > 1 {
		return fmt.Errorf("%w: camera smoothness must be in (0, 1], got %v", ErrInvalidScene, v)
	}
	if v := *s.Camera.Deadzone; v < 0 || v >= 1 {
		return fmt.Errorf("%w: camera deadzone must be in [0, 1), got %v", ErrInvalidScene, v)
	}
	return nil
}

func (s *Scene) ParallaxConfig() parallax.Config {
	return parallax.Config{
		TileWidth:       s.TileWidth,
		RepetitionCount: s.Repetitions,
		LayerCount:      len(s.Layers),
		OriginX:         s.Origin.X,
		OriginY:         s.Origin.Y,
	}
}

func (s *Scene) ImageNames() []string {
	names := make([]string, len(s.Layers))
	for i, layer := range s.Layers {
		names[i] = layer.Image
	}
	return names
}

func (s *Scene) LayerNames() []string {
	names := make([]string, len(s.Layers))
	for i, layer := range s.Layers {
		names[i] = layer.Name
	}
	return names
}

func (s *Scene) BackgroundColor() color.RGBA {
	red, green, blue := ParseColor(s.ClearColor)
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{clamp(red), clamp(green), clamp(blue), 255}
}

// MinRepetitions returns the smallest repetition count whose strip still
// covers viewportWidth in both scroll directions, given the recycle slack.
func MinRepetitions(tileWidth, viewportWidth float64) int {
	if tileWidth <= 0 {
		return 0
	}
	tiles := int(math.Ceil((viewportWidth + 2*tileWidth + 2) / tileWidth))
	return tiles - 1
}

// CheckCoverage warns when the configured strip is too short for the view.
func (s *Scene) CheckCoverage() bool {
	need := MinRepetitions(s.TileWidth, float64(s.Resolution.Width))
	if s.Repetitions < need {
		utils.Warn("Scene: %d repetitions of %.0fpx tiles leave gaps in a %dpx view; use at least %d",
			s.Repetitions, s.TileWidth, s.Resolution.Width, need)
		return false
	}
	return true
}
