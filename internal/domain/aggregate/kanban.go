// Package aggregate groups quotes for the board, client and chart views.
package aggregate

import (
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
)

// StatusUnknown keys the bucket holding quotes whose stored status is not recognized
const StatusUnknown enum.QuoteStatus = "unknown"

// Column is one kanban bucket
type Column struct {
	Status enum.QuoteStatus
	Label  string
	Quotes []*entity.Quote
}

// ByStatus partitions quotes into one column per known status in lifecycle
// order, followed by the unknown column. Every quote lands in exactly one
// column.
func ByStatus(quotes []entity.Quote) []Column {
	columns := make([]Column, 0, len(enum.QuoteStatuses)+1)
	index := make(map[enum.QuoteStatus]int, len(enum.QuoteStatuses))
	for i, s := range enum.QuoteStatuses {
		index[s] = i
		columns = append(columns, Column{Status: s, Label: s.Label(), Quotes: []*entity.Quote{}})
	}
	unknown := len(columns)
	columns = append(columns, Column{Status: StatusUnknown, Label: "Statut inconnu", Quotes: []*entity.Quote{}})

	for i := range quotes {
		q := &quotes[i]
		col, ok := index[q.Status]
		if !ok {
			col = unknown
		}
		columns[col].Quotes = append(columns[col].Quotes, q)
	}
	return columns
}
