package service

import (
	"fmt"
	"time"

	"github.com/garyjia/billed/internal/domain/apperr"
	"github.com/garyjia/billed/internal/domain/entity"
)

// billDateLayout is the layout of Bill.Date as stored
const billDateLayout = "2006-01-02"

// French short month names, truncated to three letters and capitalized
var frenchMonths = [...]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// FormatDate formats a YYYY-MM-DD date for display, e.g. "2004-04-04" -> "4 Avr. 04"
func FormatDate(raw string) (string, error) {
	t, err := time.Parse(billDateLayout, raw)
	if err != nil {
		return "", &apperr.FormatError{Value: raw, Err: err}
	}
	return fmt.Sprintf("%d %s. %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100), nil
}

// FormatStatus maps a raw bill status to its display label.
// Unknown statuses are returned unchanged.
func FormatStatus(status string) string {
	switch status {
	case entity.BillStatusPending:
		return "En attente"
	case entity.BillStatusAccepted:
		return "Accepté"
	case entity.BillStatusRefused:
		return "Refusé"
	default:
		return status
	}
}
