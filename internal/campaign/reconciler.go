package campaign

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/sheets"
)

// Campaigns sheet columns.
const (
	ColumnCampaignID     = "Campaign ID"
	ColumnCampaignText   = "Campaign Text"
	ColumnTargetCategory = "Target Client Category"
	ColumnStartDateTime  = "Start Date-Time"
	ColumnEndDateTime    = "End Date-Time"
	ColumnStatus         = "Campaign Status"
	ColumnTargetCount    = "Target Customers Count"
	ColumnMessageCount   = "Campaign Message Count"
)

// ManagedColumns are the campaign columns this system derives and owns.
var ManagedColumns = []string{ColumnCampaignID, ColumnTargetCount, ColumnStatus}

// Summary reports what a reconciliation pass touched. The write-back column
// set is the union of the columns whose flag is set.
type Summary struct {
	IDAssigned     bool
	CountRefreshed bool
	StatusChanged  bool
}

// HasChanges reports whether any campaign column needs writing back.
func (s Summary) HasChanges() bool {
	return s.IDAssigned || s.CountRefreshed || s.StatusChanged
}

// Columns returns the exact write-back set for this pass.
func (s Summary) Columns() []string {
	var cols []string
	if s.IDAssigned {
		cols = append(cols, ColumnCampaignID)
	}
	if s.CountRefreshed {
		cols = append(cols, ColumnTargetCount)
	}
	if s.StatusChanged {
		cols = append(cols, ColumnStatus)
	}
	return cols
}

// Reconciler drives the campaign lifecycle pass: identifier allocation,
// status computation, and audience-count refresh for live campaigns.
type Reconciler struct {
	now    func() time.Time
	delay  time.Duration
	sleep  func(time.Duration)
	logger *zap.Logger
}

func NewReconciler(delay time.Duration, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		now:    time.Now,
		delay:  delay,
		sleep:  time.Sleep,
		logger: logger,
	}
}

// Run processes every campaign row in order, mutating the in-memory table.
// Incomplete draft rows and rows with unparseable dates are skipped without
// partial mutation. A fixed inter-row delay paces the loop against the
// backing store.
func (r *Reconciler) Run(campaigns, clients *sheets.Table) Summary {
	var summary Summary
	existingIDs := campaigns.Column(ColumnCampaignID)
	now := r.now()

	for i := 0; i < campaigns.Len(); i++ {
		campaignID := strings.TrimSpace(campaigns.Cell(i, ColumnCampaignID))
		campaignText := strings.TrimSpace(campaigns.Cell(i, ColumnCampaignText))
		targetCategory := strings.TrimSpace(campaigns.Cell(i, ColumnTargetCategory))
		startRaw := strings.TrimSpace(campaigns.Cell(i, ColumnStartDateTime))
		endRaw := strings.TrimSpace(campaigns.Cell(i, ColumnEndDateTime))
		currentStatus := ParseStatus(campaigns.Cell(i, ColumnStatus))

		if targetCategory == "" {
			r.logger.Warn("skipping campaign row without target category",
				zap.Int("row", i+1))
			continue
		}
		// Incomplete draft rows are left alone entirely.
		if campaignText == "" || startRaw == "" || endRaw == "" {
			continue
		}

		start, err := ParseDateTime(startRaw)
		if err != nil {
			r.logger.Warn("could not parse campaign start",
				zap.Int("row", i+1), zap.Error(err))
			continue
		}
		end, err := ParseDateTime(endRaw)
		if err != nil {
			r.logger.Warn("could not parse campaign end",
				zap.Int("row", i+1), zap.Error(err))
			continue
		}

		if campaignID == "" {
			campaignID = NextCampaignID(existingIDs)
			campaigns.SetCell(i, ColumnCampaignID, campaignID)
			// Keep the in-run pool current so later rows don't collide.
			existingIDs = append(existingIDs, campaignID)
			summary.IDAssigned = true
			r.logger.Info("assigned campaign id",
				zap.String("campaign_id", campaignID))
		}

		newStatus := ComputeStatus(start, end, now)

		if newStatus.Live() {
			matched := FindMatchingClients(clients, targetCategory)
			campaigns.SetCell(i, ColumnTargetCount, fmt.Sprintf("%d", len(matched)))
			summary.CountRefreshed = true

			r.logger.Info("campaign audience refreshed",
				zap.String("campaign_id", campaignID),
				zap.String("target_category", targetCategory),
				zap.Int("matched", len(matched)))
			for _, row := range matched {
				r.logger.Debug("matched client",
					zap.String("campaign_id", campaignID),
					zap.String("name", clients.Cell(row, clientNameColumn)),
					zap.String("email", clients.Cell(row, clientEmailColumn)),
					zap.String("phone", clients.Cell(row, clientPhoneColumn)))
			}
		} else {
			r.logger.Info("campaign not live, audience unchanged",
				zap.String("campaign_id", campaignID),
				zap.String("status", newStatus.String()))
		}

		if newStatus != currentStatus {
			campaigns.SetCell(i, ColumnStatus, newStatus.String())
			summary.StatusChanged = true
			r.logger.Info("campaign status updated",
				zap.String("campaign_id", campaignID),
				zap.String("status", newStatus.String()))
		}

		r.sleep(r.delay)
	}
	return summary
}
