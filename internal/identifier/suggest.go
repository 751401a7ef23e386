package identifier

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// Suggest corrects each unknown segment of raw to the nearest known token.
// It returns false when a segment is missing or too far from any token.
func (c *Codec) Suggest(raw string) (string, bool) {
	segments := splitSegments(raw)
	if len(segments) < simpleSegments {
		return "", false
	}

	typeTokens := make(tokenSet, len(c.subtypes))
	for t := range c.subtypes {
		typeTokens[string(t)] = struct{}{}
	}
	typ, ok := nearest(segments[0], typeTokens, false)
	if !ok {
		return "", false
	}

	want := simpleSegments
	if domain.ResourceType(typ) == domain.ResourceMonster {
		want = monsterSegments
	}
	if len(segments) != want {
		return "", false
	}

	out := []string{typ}
	subtype, ok := nearest(segments[1], c.subtypes[domain.ResourceType(typ)], true)
	if !ok {
		return "", false
	}
	out = append(out, subtype)

	if want == monsterSegments {
		part, ok := nearest(segments[2], c.parts, true)
		if !ok {
			return "", false
		}
		out = append(out, part)
	}
	return strings.Join(out, domain.IdentifierSeparator), true
}

func nearest(segment string, candidates tokenSet, allowWildcard bool) (string, bool) {
	if candidates.has(segment) || (allowWildcard && segment == domain.Wildcard) {
		return segment, true
	}
	best := ""
	bestDistance := maxSuggestDistance + 1
	// Sorted iteration keeps ties deterministic.
	for _, candidate := range candidates.sorted() {
		d := levenshtein.ComputeDistance(segment, candidate)
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, best != ""
}
