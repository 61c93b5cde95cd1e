package campaign

import (
	"fmt"
	"regexp"
	"strconv"
)

var campaignIDPattern = regexp.MustCompile(`CMP-(\d+)`)

// NextCampaignID allocates the next identifier: one past the highest numeric
// suffix among the existing IDs, zero-padded to four digits. Non-conforming
// entries are ignored.
func NextCampaignID(existing []string) string {
	highest := 0
	for _, id := range existing {
		m := campaignIDPattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("CMP-%04d", highest+1)
}
