package campaign

import (
	"strings"

	"github.com/hotelrev/revman/internal/sheets"
)

// Clients sheet columns the targeting logic reads.
const (
	clientNameColumn     = "Client Name"
	clientEmailColumn    = "Client Email"
	clientPhoneColumn    = "Client Phone"
	clientCategoryColumn = "Client Category"
)

// FindMatchingClients returns the row indices, in input order, of clients
// whose category token set contains the target category exactly. Categories
// are comma-separated; each token is trimmed and lowercased before the
// comparison, so "fam" never matches "Family". This is a whole-token test,
// unlike the word-overlap matching used by the dispatch trigger.
func FindMatchingClients(clients *sheets.Table, targetCategory string) []int {
	target := strings.ToLower(strings.TrimSpace(targetCategory))
	if target == "" {
		return nil
	}

	var matched []int
	for i := 0; i < clients.Len(); i++ {
		raw := strings.ToLower(strings.TrimSpace(clients.Cell(i, clientCategoryColumn)))
		if raw == "" {
			continue
		}
		for _, token := range strings.Split(raw, ",") {
			if strings.TrimSpace(token) == target {
				matched = append(matched, i)
				break
			}
		}
	}
	return matched
}
