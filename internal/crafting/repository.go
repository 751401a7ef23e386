package crafting

import (
	"github.com/osse101/SpiritForge_Go/internal/repository"
)

// Repository is a local interface for crafting repository operations.
// It embeds repository.Crafting so mocks can be generated in this package.
type Repository interface {
	repository.Crafting
}
