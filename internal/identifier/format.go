package identifier

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// Format returns the display label of an identifier, using wildcard
// phrasing for "*" segments.
func (c *Codec) Format(id domain.ResourceIdentifier) string {
	switch id.Type {
	case domain.ResourceGem:
		if id.Subtype == domain.Wildcard {
			return labelAnyGem
		}
		return c.label(id.Subtype)
	case domain.ResourceEssence:
		if id.Subtype == domain.Wildcard {
			return labelAnyEssence
		}
		return fmt.Sprintf(labelEssence, c.label(id.Subtype))
	case domain.ResourceMonster:
		anyCreature := id.Subtype == domain.Wildcard
		anyPart := id.Part == domain.Wildcard
		switch {
		case anyCreature && anyPart:
			return labelAnyMonsterPart
		case anyCreature:
			return fmt.Sprintf(labelPartAnyCreature, c.label(id.Part))
		case anyPart:
			return fmt.Sprintf(labelAnyCreaturePart, c.label(id.Subtype))
		default:
			return fmt.Sprintf(labelMonsterPart, c.label(id.Subtype), c.label(id.Part))
		}
	}
	return id.String()
}

// FormatString parses raw with wildcards allowed and formats it. Invalid
// input is returned unchanged.
func (c *Codec) FormatString(raw string) string {
	id, err := c.Parse(raw, true)
	if err != nil {
		return raw
	}
	return c.Format(id)
}

func (c *Codec) label(token string) string {
	if label, ok := c.labels[token]; ok {
		return label
	}
	// Casers are stateful, so one is built per call.
	return cases.Title(language.English).String(token)
}
