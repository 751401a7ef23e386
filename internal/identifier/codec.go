package identifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

type tokenSet map[string]struct{}

func newTokenSet(lists ...[]string) tokenSet {
	set := make(tokenSet)
	for _, list := range lists {
		for _, token := range list {
			set[strings.ToLower(token)] = struct{}{}
		}
	}
	return set
}

func (t tokenSet) has(token string) bool {
	_, ok := t[token]
	return ok
}

func (t tokenSet) sorted() []string {
	out := make([]string, 0, len(t))
	for token := range t {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Codec parses, validates and formats resource identifiers against a Schema.
// It is immutable after construction and safe for concurrent use.
type Codec struct {
	creatures tokenSet
	subtypes  map[domain.ResourceType]tokenSet
	parts     tokenSet
	labels    map[string]string
}

// NewCodec builds a codec from schema enumerations
func NewCodec(schema *Schema) *Codec {
	creatures := newTokenSet(schema.CreatureTypes)
	labels := make(map[string]string, len(schema.Labels))
	for token, label := range schema.Labels {
		labels[strings.ToLower(token)] = label
	}
	return &Codec{
		creatures: creatures,
		subtypes: map[domain.ResourceType]tokenSet{
			domain.ResourceGem:     newTokenSet(schema.Gems),
			domain.ResourceEssence: newTokenSet(schema.Essences, schema.CreatureTypes),
			domain.ResourceMonster: creatures,
		},
		parts:  newTokenSet(schema.MonsterParts),
		labels: labels,
	}
}

// Parse decodes a dotted identifier. Malformed input returns an error
// wrapping domain.ErrInvalidIdentifier.
func (c *Codec) Parse(raw string, allowWildcard bool) (domain.ResourceIdentifier, error) {
	segments := splitSegments(raw)
	if len(segments) < simpleSegments {
		return domain.ResourceIdentifier{}, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}

	id := domain.ResourceIdentifier{
		Type:    domain.ResourceType(segments[0]),
		Subtype: segments[1],
	}
	want := simpleSegments
	if id.Type == domain.ResourceMonster {
		want = monsterSegments
	}
	if len(segments) != want {
		return domain.ResourceIdentifier{}, fmt.Errorf("%w: %q has %d segments", domain.ErrInvalidIdentifier, raw, len(segments))
	}
	if id.Type == domain.ResourceMonster {
		id.Part = segments[2]
	}

	if !c.Validate(id, allowWildcard) {
		return domain.ResourceIdentifier{}, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}
	return id, nil
}

// Validate reports whether every segment of id is a known token, or the
// wildcard when allowWildcard is set.
func (c *Codec) Validate(id domain.ResourceIdentifier, allowWildcard bool) bool {
	subtypes, ok := c.subtypes[id.Type]
	if !ok {
		return false
	}
	if !segmentValid(id.Subtype, subtypes, allowWildcard) {
		return false
	}
	if id.Type == domain.ResourceMonster {
		return segmentValid(id.Part, c.parts, allowWildcard)
	}
	return id.Part == ""
}

// ValidateString parses raw and discards the result
func (c *Codec) ValidateString(raw string, allowWildcard bool) bool {
	_, err := c.Parse(raw, allowWildcard)
	return err == nil
}

// FromDescriptor projects an item's resource metadata into a concrete
// identifier. Wildcards are never valid on items.
func (c *Codec) FromDescriptor(d *domain.ResourceDescriptor) (*domain.ResourceIdentifier, error) {
	if d == nil {
		return nil, nil
	}
	id := domain.ResourceIdentifier{
		Type:    domain.ResourceType(normalize(string(d.Type))),
		Subtype: normalize(d.Subtype),
	}
	if id.Type == domain.ResourceMonster {
		id.Part = normalize(d.Part)
	}
	if !c.Validate(id, false) {
		return nil, fmt.Errorf("%w: item resource %s", domain.ErrInvalidIdentifier, id)
	}
	return &id, nil
}

// IsCreatureType reports whether token is a recognized creature type
func (c *Codec) IsCreatureType(token string) bool {
	return c.creatures.has(normalize(token))
}

// CreatureTypes returns the creature-type enumeration in sorted order
func (c *Codec) CreatureTypes() []string {
	return c.creatures.sorted()
}

func segmentValid(segment string, allowed tokenSet, allowWildcard bool) bool {
	if segment == domain.Wildcard {
		return allowWildcard
	}
	return allowed.has(segment)
}

func splitSegments(raw string) []string {
	raw = normalize(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, domain.IdentifierSeparator)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
