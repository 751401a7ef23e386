package domain

// ItemType is the kind of item a recipe may target
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeEquipment  ItemType = "equipment"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeTool       ItemType = "tool"
	ItemTypeLoot       ItemType = "loot"
)

// AllowedTargetTypes are the item types a recipe may produce
var AllowedTargetTypes = map[ItemType]bool{
	ItemTypeWeapon:     true,
	ItemTypeEquipment:  true,
	ItemTypeConsumable: true,
	ItemTypeTool:       true,
	ItemTypeLoot:       true,
}

// IsStackable reports whether outputs of this type collapse into one stack
func (t ItemType) IsStackable() bool {
	return t == ItemTypeConsumable
}

// ConsumableSubtypeSpirit marks synthesized spirit items
const ConsumableSubtypeSpirit = "spirit"

// Rarity is the display tier of an item
type Rarity string

const (
	RarityUnknown   Rarity = ""
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "veryRare"
	RarityLegendary Rarity = "legendary"
	RarityArtifact  Rarity = "artifact"
)

var gradeRarities = [...]Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityVeryRare,
	RarityLegendary,
	RarityArtifact,
}

// RarityForGrade maps a spirit grade 1-6 to its rarity. Anything else is unknown.
func RarityForGrade(grade int) Rarity {
	if grade < MinSpiritGrade || grade > MaxSpiritGrade {
		return RarityUnknown
	}
	return gradeRarities[grade-1]
}

const (
	MinSpiritGrade = 1
	MaxSpiritGrade = 6
)

// DamagePart is one damage roll of a stat block, e.g. "2d6 + @mod" fire
type DamagePart struct {
	Formula    string `json:"formula"`
	DamageType string `json:"damage_type,omitempty"`
}

// Measure is a distance or area with units
type Measure struct {
	Value int    `json:"value"`
	Units string `json:"units,omitempty"`
	Shape string `json:"shape,omitempty"`
}

// StatBlock is the damage, save, target-area block of an item
type StatBlock struct {
	Damage      []DamagePart `json:"damage,omitempty"`
	SaveDC      *int         `json:"save_dc,omitempty"`
	SaveAbility string       `json:"save_ability,omitempty"`
	Area        *Measure     `json:"area,omitempty"`
	Range       *Measure     `json:"range,omitempty"`
}

// Clone returns a deep copy
func (s StatBlock) Clone() StatBlock {
	out := StatBlock{SaveAbility: s.SaveAbility}
	if len(s.Damage) > 0 {
		out.Damage = append([]DamagePart(nil), s.Damage...)
	}
	if s.SaveDC != nil {
		dc := *s.SaveDC
		out.SaveDC = &dc
	}
	if s.Area != nil {
		area := *s.Area
		out.Area = &area
	}
	if s.Range != nil {
		rng := *s.Range
		out.Range = &rng
	}
	return out
}

// ItemTemplate is a recipe target resolved by uuid
type ItemTemplate struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemType    ItemType  `json:"item_type"`
	Rarity      Rarity    `json:"rarity,omitempty"`
	Stats       StatBlock `json:"stats"`
}

// ItemUses is a consumption counter
type ItemUses struct {
	Value       int  `json:"value"`
	Max         int  `json:"max"`
	AutoDestroy bool `json:"auto_destroy"`
}

// SpiritData links a spirit item back to its recipe and target for binding
type SpiritData struct {
	RecipeID   string `json:"recipe_id"`
	TargetUUID string `json:"target_uuid"`
	Grade      int    `json:"grade"`
}

// InventoryItem is a concrete item owned by an actor
type InventoryItem struct {
	ID             string              `json:"id"`
	ActorID        string              `json:"actor_id"`
	Name           string              `json:"name"`
	ItemType       ItemType            `json:"item_type"`
	Subtype        string              `json:"subtype,omitempty"`
	Quantity       int                 `json:"quantity"`
	Description    string              `json:"description,omitempty"`
	Rarity         Rarity              `json:"rarity,omitempty"`
	Resource       *ResourceDescriptor `json:"resource,omitempty"`
	OriginRecipeID string              `json:"origin_recipe_id,omitempty"`
	Uses           *ItemUses           `json:"uses,omitempty"`
	Spirit         *SpiritData         `json:"spirit,omitempty"`
	Stats          *StatBlock          `json:"stats,omitempty"`

	// Identifier is parsed once at the inventory boundary; nil when the item
	// carries no resource or an invalid one.
	Identifier *ResourceIdentifier `json:"-"`
}
