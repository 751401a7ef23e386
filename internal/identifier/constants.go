package identifier

// Segment counts per resource type
const (
	simpleSegments  = 2
	monsterSegments = 3
)

// maxSuggestDistance is the largest edit distance Suggest will correct
const maxSuggestDistance = 2

// Wildcard display phrasing
const (
	labelAnyGem          = "Any Gem"
	labelAnyEssence      = "Any Essence"
	labelAnyMonsterPart  = "Any Monster Part"
	labelAnyCreaturePart = "Any %s Part"
	labelPartAnyCreature = "%s (any creature)"
	labelEssence         = "%s Essence"
	labelMonsterPart     = "%s %s"
)
