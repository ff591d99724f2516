package llm

import (
	"context"

	"github.com/mattgrange/winescout/internal/entity"
)

// WineListParser is the interface the menu assembler depends on.
// Implementations must degrade to an empty slice on any per-page failure so
// one bad page never aborts a multi-page batch.
type WineListParser interface {
	ParseWineList(ctx context.Context, text string) []entity.WineRecord
}
