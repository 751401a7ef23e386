package crafting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

func TestSpiritGrade(t *testing.T) {
	codec := testCodec()

	t.Run("highest creature essence grade wins", func(t *testing.T) {
		items := []domain.InventoryItem{
			resourceItem("e1", testActor, domain.ResourceEssence, "undead", "", 1, intPtr(2)),
			resourceItem("e2", testActor, domain.ResourceEssence, "dragon", "", 1, intPtr(4)),
			resourceItem("e3", testActor, domain.ResourceEssence, "fey", "", 1, intPtr(1)),
		}
		grade := SpiritGrade(codec, items)
		require.NotNil(t, grade)
		assert.Equal(t, 4, *grade)
		assert.Equal(t, domain.RarityVeryRare, domain.RarityForGrade(*grade))
	})

	t.Run("non-creature essences do not count", func(t *testing.T) {
		items := []domain.InventoryItem{
			resourceItem("e1", testActor, domain.ResourceEssence, "arcane", "", 1, intPtr(6)),
			resourceItem("g1", testActor, domain.ResourceGem, "ruby", "", 1, intPtr(5)),
			resourceItem("e2", testActor, domain.ResourceEssence, "beast", "", 1, intPtr(2)),
		}
		grade := SpiritGrade(codec, items)
		require.NotNil(t, grade)
		assert.Equal(t, 2, *grade)
	})

	t.Run("missing or non-positive grade counts as one", func(t *testing.T) {
		items := []domain.InventoryItem{
			resourceItem("e1", testActor, domain.ResourceEssence, "undead", "", 1, nil),
			resourceItem("e2", testActor, domain.ResourceEssence, "undead", "", 1, intPtr(-3)),
		}
		grade := SpiritGrade(codec, items)
		require.NotNil(t, grade)
		assert.Equal(t, 1, *grade)
	})

	t.Run("no eligible essence", func(t *testing.T) {
		items := []domain.InventoryItem{
			resourceItem("e1", testActor, domain.ResourceEssence, "divine", "", 1, intPtr(3)),
			{ID: "plain", Quantity: 1},
		}
		assert.Nil(t, SpiritGrade(codec, items))
		assert.Nil(t, SpiritGrade(codec, nil))
	})
}

func TestSynthesizeSpirit(t *testing.T) {
	recipe := &domain.Recipe{ID: "recipe-spirit", RecipeType: domain.RecipeTypeSpirit}
	target := &domain.ItemTemplate{UUID: "tmpl-blade", Name: "Flame Tongue", Description: "<p>Hot.</p>", ItemType: domain.ItemTypeWeapon}

	spirit := synthesizeSpirit("spirit-1", testActor, recipe, target, 3)

	assert.Equal(t, "spirit-1", spirit.ID)
	assert.Equal(t, "Spirit of Flame Tongue", spirit.Name)
	assert.Equal(t, domain.ItemTypeConsumable, spirit.ItemType)
	assert.Equal(t, domain.ConsumableSubtypeSpirit, spirit.Subtype)
	assert.Equal(t, 1, spirit.Quantity)
	assert.Equal(t, domain.RarityRare, spirit.Rarity)
	assert.Contains(t, spirit.Description, "Grade 3")
	assert.Contains(t, spirit.Description, "<p>Hot.</p>")
	require.NotNil(t, spirit.Uses)
	assert.Equal(t, domain.ItemUses{Value: 1, Max: 1, AutoDestroy: true}, *spirit.Uses)
	require.NotNil(t, spirit.Spirit)
	assert.Equal(t, domain.SpiritData{RecipeID: "recipe-spirit", TargetUUID: "tmpl-blade", Grade: 3}, *spirit.Spirit)
}
