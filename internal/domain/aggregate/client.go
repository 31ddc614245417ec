package aggregate

import (
	"sort"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
)

// Client is a roll-up of every quote sharing an email address
type Client struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	Commune   *string

	Total     int
	Converted int
	Rate      float64
}

// ByClient groups quotes by normalized email. Contact details come from the
// last quote seen for that email. Groups are sorted by quote count,
// descending, ties keeping first-appearance order. Quotes without an email
// are skipped.
func ByClient(quotes []entity.Quote) []Client {
	index := make(map[string]int)
	clients := make([]Client, 0)

	for i := range quotes {
		q := &quotes[i]
		key := utils.NormalizeEmail(q.ClientEmail)
		if key == "" {
			continue
		}
		pos, ok := index[key]
		if !ok {
			pos = len(clients)
			index[key] = pos
			clients = append(clients, Client{Email: key})
		}
		c := &clients[pos]
		c.FirstName = q.ClientFirstName
		c.LastName = q.ClientLastName
		c.Phone = q.ClientPhone
		c.Commune = q.ClientCommune
		c.Total++
		if q.Converted() {
			c.Converted++
		}
	}

	for i := range clients {
		clients[i].Rate = Percent(clients[i].Converted, clients[i].Total)
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].Total > clients[j].Total
	})
	return clients
}

// Percent returns part/total × 100, or 0 when total is 0
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
