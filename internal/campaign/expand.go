package campaign

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/sheets"
)

const (
	templateColumnPrefix = "Message Template #"
	timingColumnPrefix   = "Message Send Timing #"
)

// TemplateColumn names the message-template column for slot i (1-based).
func TemplateColumn(i int) string {
	return templateColumnPrefix + strconv.Itoa(i)
}

// TimingColumn names the send-timing column for slot i (1-based).
func TimingColumn(i int) string {
	return timingColumnPrefix + strconv.Itoa(i)
}

// Expander grows the Campaigns sheet with paired template/timing columns up
// to the largest message count among live campaigns. It only ever adds
// columns; unused trailing pairs are never removed.
type Expander struct {
	store     sheets.Store
	sheetName string
	logger    *zap.Logger
}

func NewExpander(store sheets.Store, sheetName string, logger *zap.Logger) *Expander {
	return &Expander{store: store, sheetName: sheetName, logger: logger}
}

// Expand appends any missing template/timing column pairs and writes the new
// header plus the (empty) new columns back to the sheet.
func (e *Expander) Expand(ctx context.Context, campaigns *sheets.Table) error {
	if !campaigns.HasColumn(ColumnMessageCount) || !campaigns.HasColumn(ColumnStatus) {
		e.logger.Warn("missing required columns, skipping message template expansion")
		return nil
	}

	maxCount := maxLiveMessageCount(campaigns)
	if maxCount <= 0 {
		e.logger.Info("no live campaign with message count > 0, no columns added")
		return nil
	}

	currentPairCount := countSlotColumns(campaigns.Headers) / 2
	if maxCount <= currentPairCount {
		e.logger.Info("all template/timing columns already exist",
			zap.Int("pairs", currentPairCount))
		return nil
	}

	var newCols []string
	for i := currentPairCount + 1; i <= maxCount; i++ {
		newCols = append(newCols, TemplateColumn(i), TimingColumn(i))
	}
	e.logger.Info("adding template/timing column pairs",
		zap.Strings("columns", newCols))

	for _, col := range newCols {
		campaigns.AddColumn(col)
	}

	if err := e.store.WriteHeader(ctx, e.sheetName, campaigns.Headers); err != nil {
		return err
	}
	return e.store.WriteColumns(ctx, e.sheetName, campaigns, newCols)
}

// maxLiveMessageCount finds the largest parseable non-negative message count
// among ACTIVE/UPCOMING campaigns. Unparseable cells are ignored.
func maxLiveMessageCount(campaigns *sheets.Table) int {
	maxCount := 0
	for i := 0; i < campaigns.Len(); i++ {
		if !ParseStatus(campaigns.Cell(i, ColumnStatus)).Live() {
			continue
		}
		raw := strings.TrimSpace(campaigns.Cell(i, ColumnMessageCount))
		count, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if count > maxCount {
			maxCount = count
		}
	}
	return maxCount
}

func countSlotColumns(headers []string) int {
	n := 0
	for _, h := range headers {
		if strings.HasPrefix(h, templateColumnPrefix) || strings.HasPrefix(h, timingColumnPrefix) {
			n++
		}
	}
	return n
}
