package identifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// Schema holds the token enumerations of the installed ruleset.
// Essence subtypes are Essences plus every creature type; monster subtypes
// are the creature types.
type Schema struct {
	CreatureTypes []string          `yaml:"creature_types"`
	Gems          []string          `yaml:"gems"`
	Essences      []string          `yaml:"essences"`
	MonsterParts  []string          `yaml:"monster_parts"`
	Labels        map[string]string `yaml:"labels"`
}

// LoadSchema reads a resource schema from a YAML file
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource schema: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes and validates a YAML resource schema
func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Validate checks that every enumeration is non-empty and holds usable tokens
func (s *Schema) Validate() error {
	lists := map[string][]string{
		"creature_types": s.CreatureTypes,
		"gems":           s.Gems,
		"monster_parts":  s.MonsterParts,
	}
	for name, tokens := range lists {
		if len(tokens) == 0 {
			return fmt.Errorf("%w: resource schema %s is empty", domain.ErrInvalidInput, name)
		}
	}
	lists["essences"] = s.Essences
	for name, tokens := range lists {
		for _, token := range tokens {
			if token == "" || token == domain.Wildcard || strings.Contains(token, domain.IdentifierSeparator) {
				return fmt.Errorf("%w: resource schema %s has invalid token %q", domain.ErrInvalidInput, name, token)
			}
		}
	}
	return nil
}

// DefaultSchema returns the built-in ruleset enumerations
func DefaultSchema() *Schema {
	return &Schema{
		CreatureTypes: []string{
			"aberration", "beast", "celestial", "construct", "dragon", "elemental", "fey",
			"fiend", "giant", "humanoid", "monstrosity", "ooze", "plant", "undead",
		},
		Gems: []string{
			"diamond", "ruby", "sapphire", "emerald", "amethyst", "topaz", "pearl", "onyx", "opal", "jade",
		},
		Essences: []string{"arcane", "divine", "primal", "psionic"},
		MonsterParts: []string{
			"eye", "horn", "bone", "claws", "blood", "heart", "hide", "scale", "fang",
			"venom", "wing", "tail", "brain", "feather", "tentacle",
		},
	}
}
