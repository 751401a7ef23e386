package domain

import "strings"

// ResourceType is the top-level category of a crafting material
type ResourceType string

const (
	ResourceGem     ResourceType = "gem"
	ResourceEssence ResourceType = "essence"
	ResourceMonster ResourceType = "monster"
)

// Wildcard matches any value in the segment it occupies
const Wildcard = "*"

// IdentifierSeparator joins identifier segments
const IdentifierSeparator = "."

// ResourceIdentifier is the parsed form of "type.subtype[.part]".
// Part is only meaningful for monster resources.
type ResourceIdentifier struct {
	Type    ResourceType `json:"type"`
	Subtype string       `json:"subtype"`
	Part    string       `json:"part,omitempty"`
}

// String returns the dotted textual form
func (id ResourceIdentifier) String() string {
	if id.Type == "" {
		return ""
	}
	parts := []string{string(id.Type), id.Subtype}
	if id.Type == ResourceMonster {
		parts = append(parts, id.Part)
	}
	return strings.Join(parts, IdentifierSeparator)
}

// IsWildcard reports whether any segment is the wildcard token
func (id ResourceIdentifier) IsWildcard() bool {
	if id.Subtype == Wildcard {
		return true
	}
	return id.Type == ResourceMonster && id.Part == Wildcard
}

// IsZero reports whether the identifier is unset
func (id ResourceIdentifier) IsZero() bool {
	return id == ResourceIdentifier{}
}

// ResourceDescriptor is the resource metadata stored on an inventory item.
// Grade is only set on essences.
type ResourceDescriptor struct {
	Type    ResourceType `json:"type"`
	Subtype string       `json:"subtype"`
	Part    string       `json:"part,omitempty"`
	Grade   *int         `json:"grade,omitempty"`
}
