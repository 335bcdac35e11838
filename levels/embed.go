package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the level loaded when no name is given.
const Default = "tutorial.json"

type Level struct {
	Name     string      `json:"name"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Entities []Placement `json:"entities"`
}

// Placement instantiates Prefab at (X, Y). Components are shallow-merged
// over the prefab's own component specs.
type Placement struct {
	Prefab     string         `json:"prefab"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Rotation   float64        `json:"rotation,omitempty"`
	Components map[string]any `json:"components,omitempty"`
}

// LoadLevelFromFS loads an embedded level. The .json suffix is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i, p := range lvl.Entities {
		if p.Prefab == "" {
			return nil, fmt.Errorf("level entity %d: missing prefab", i)
		}
	}
	return &lvl, nil
}
