package crafting

import (
	"regexp"
	"strconv"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// diceTerm matches the first "NdM" term of a roll formula; N may be omitted.
var diceTerm = regexp.MustCompile(`(\d*)d(\d+)`)

// ScaleDamageFormula adds extraDice to the count of the first dice term.
// Formulas without dice are returned unchanged.
func ScaleDamageFormula(formula string, extraDice int) string {
	if extraDice <= 0 {
		return formula
	}
	loc := diceTerm.FindStringSubmatchIndex(formula)
	if loc == nil {
		return formula
	}
	count := 1
	if loc[3] > loc[2] {
		n, err := strconv.Atoi(formula[loc[2]:loc[3]])
		if err != nil {
			return formula
		}
		count = n
	}
	return formula[:loc[2]] + strconv.Itoa(count+extraDice) + formula[loc[3]:]
}

// BindStats scales a stat block by a spirit grade: every damage part gains
// grade-1 dice, the save DC gains grade, area and range gain grade-1 units.
func BindStats(base domain.StatBlock, grade int) domain.StatBlock {
	out := base.Clone()
	extra := grade - 1

	for i := range out.Damage {
		out.Damage[i].Formula = ScaleDamageFormula(out.Damage[i].Formula, extra)
	}
	if out.SaveDC != nil {
		*out.SaveDC += grade
	}
	if extra > 0 {
		if out.Area != nil {
			out.Area.Value += extra
		}
		if out.Range != nil {
			out.Range.Value += extra
		}
	}
	return out
}

// boundItem builds the permanent item a spirit redeems into
func boundItem(id, actorID string, spirit *domain.SpiritData, target *domain.ItemTemplate) domain.InventoryItem {
	stats := BindStats(target.Stats, spirit.Grade)
	return domain.InventoryItem{
		ID:             id,
		ActorID:        actorID,
		Name:           target.Name,
		ItemType:       target.ItemType,
		Quantity:       1,
		Description:    target.Description,
		Rarity:         domain.RarityForGrade(spirit.Grade),
		OriginRecipeID: spirit.RecipeID,
		Stats:          &stats,
	}
}
