package scene

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Vec2 struct {
	X, Y float64
}

// UnmarshalJSON accepts "x y" strings, a single number, or {"x":..,"y":..}.
func (vec2 *Vec2) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		fields := strings.Fields(str)
		if len(fields) >= 2 {
			vec2.X, _ = strconv.ParseFloat(fields[0], 64)
			vec2.Y, _ = strconv.ParseFloat(fields[1], 64)
		} else if len(fields) == 1 {
			value, _ := strconv.ParseFloat(fields[0], 64)
			vec2.X, vec2.Y = value, value
		}
		return nil
	}
	var floatVal float64
	if err := json.Unmarshal(data, &floatVal); err == nil {
		vec2.X, vec2.Y = floatVal, floatVal
		return nil
	}
	var result struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}
	vec2.X, vec2.Y = result.X, result.Y
	return nil
}

type Scene struct {
	TileWidth   float64    `json:"tileWidth"`
	Repetitions int        `json:"repetitions"`
	Origin      Vec2       `json:"origin"`
	ClearColor  string     `json:"clearColor"`
	Resolution  Resolution `json:"resolution"`
	Camera      Camera     `json:"camera"`
	Layers      []Layer    `json:"layers"`

	// Dir is the directory the scene file was loaded from.
	Dir string `json:"-"`
}

type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Camera struct {
	Mode       string   `json:"mode"`
	Speed      float64  `json:"speed"`
	Smoothness *float64 `json:"smoothness"`
	Deadzone   *float64 `json:"deadzone"`
}

type Layer struct {
	Image string `json:"image"`
	Name  string `json:"name"`
}

func ParseColor(colorStr string) (float64, float64, float64) {
	colorParts := strings.Fields(colorStr)
	if len(colorParts) < 3 {
		return 0, 0, 0
	}
	red, _ := strconv.ParseFloat(colorParts[0], 64)
	green, _ := strconv.ParseFloat(colorParts[1], 64)
	blue, _ := strconv.ParseFloat(colorParts[2], 64)
	return red, green, blue
}
