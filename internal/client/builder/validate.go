package builder

import (
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

// ValidateForPreview gates build -> preview.
func ValidateForPreview(d models.Draft) error {
	if len(d.Steps) == 0 {
		return invalid("steps", ErrNoSteps.Error(), ErrNoSteps)
	}
	if !d.HasBlocks() {
		return invalid("steps", ErrNoBlocks.Error(), ErrNoBlocks)
	}
	return nil
}

// ValidateForPublish checks, in order, title, description, content and
// price, and reports the first field that fails.
func ValidateForPublish(d models.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title", "title is required", nil)
	}
	if strings.TrimSpace(d.Description) == "" {
		return invalid("description", "description is required", nil)
	}
	if err := ValidateForPreview(d); err != nil {
		return err
	}
	if d.PriceType == models.PricePaid && d.PriceCents() < 1 {
		return invalid("price", "paid blueprints need a decimal price between 0.01 and 1000000", nil)
	}
	return nil
}
