package services

import (
	"fmt"

	"backoffice-service/internal/models"
)

// conflictDiff accumulates field-level "current value" notes for a
// version conflict report. Only fields where the persisted value differs
// from the client's proposed value are recorded.
type conflictDiff struct {
	conflicts []models.FieldConflict
}

func (d *conflictDiff) compare(field, current, proposed string) {
	if current != proposed {
		d.conflicts = append(d.conflicts, models.FieldConflict{
			Field:        field,
			CurrentValue: fmt.Sprintf("Current value: %s", current),
		})
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatOptionalMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMoney(*v)
}
