package component

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Category classifies an entity for collision dispatch.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryFloor
	CategoryEnemy
	CategoryLava
)

var categoryNames = map[Category]string{
	CategoryFloor: "Floor",
	CategoryEnemy: "Enemy",
	CategoryLava:  "Lava",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "None"
}

// ParseCategory maps a tag string to its Category. Matching is exact.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown category %q", s)
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("category must be a string")
	}
	parsed, err := ParseCategory(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

// CategoryTag carries the entity's Category.
type CategoryTag struct {
	Category Category
}

var CategoryTagComponent = NewComponent[CategoryTag]()
