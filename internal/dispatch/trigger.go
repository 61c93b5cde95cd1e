package dispatch

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/campaign"
	"github.com/hotelrev/revman/internal/enrich"
	"github.com/hotelrev/revman/internal/sheets"
)

// Trigger walks active campaigns and fires their scheduled message slots
// to every matched client over the configured channels. Each run evaluates
// every slot once; a slot fires when its send time of day has been reached
// and stays eligible on later runs the same day.
type Trigger struct {
	sms      Sender
	whatsapp Sender
	email    EmailSender
	now      func() time.Time
	logger   *zap.Logger
}

func NewTrigger(sms, whatsapp Sender, email EmailSender, logger *zap.Logger) *Trigger {
	return &Trigger{
		sms:      sms,
		whatsapp: whatsapp,
		email:    email,
		now:      time.Now,
		logger:   logger,
	}
}

// Run dispatches due message slots for every active campaign. Send
// failures are logged per recipient and never abort the run.
func (tr *Trigger) Run(ctx context.Context, campaigns, clients *sheets.Table) {
	if !campaigns.HasColumn(campaign.ColumnStatus) ||
		!campaigns.HasColumn(campaign.ColumnMessageCount) ||
		!campaigns.HasColumn(campaign.ColumnCampaignID) ||
		!campaigns.HasColumn(campaign.ColumnTargetCategory) {
		tr.logger.Warn("campaigns sheet missing dispatch columns, skipping message service")
		return
	}
	if !clients.HasColumn(enrich.ColumnClientCategory) || !clients.HasColumn(enrich.ColumnClientPhone) {
		tr.logger.Warn("clients sheet missing dispatch columns, skipping message service")
		return
	}

	for i := 0; i < campaigns.Len(); i++ {
		status := campaign.ParseStatus(campaigns.Cell(i, campaign.ColumnStatus))
		if !status.Live() {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(campaigns.Cell(i, campaign.ColumnMessageCount)))
		if err != nil || count <= 0 {
			continue
		}
		tr.dispatchCampaign(ctx, campaigns, clients, i, count)
	}
}

func (tr *Trigger) dispatchCampaign(ctx context.Context, campaigns, clients *sheets.Table, row, count int) {
	id := campaigns.Cell(row, campaign.ColumnCampaignID)
	target := campaigns.Cell(row, campaign.ColumnTargetCategory)

	phones, emails := tr.collectRecipients(clients, target)
	if len(phones) == 0 && len(emails) == 0 {
		tr.logger.Info("no matching recipients for campaign",
			zap.String("campaign_id", id),
			zap.String("target_category", target))
		return
	}

	for slot := 1; slot <= count; slot++ {
		body := campaigns.Cell(row, campaign.TemplateColumn(slot))
		if strings.TrimSpace(body) == "" {
			tr.logger.Warn("empty message template, skipping slot",
				zap.String("campaign_id", id),
				zap.Int("slot", slot))
			continue
		}

		timing := campaigns.Cell(row, campaign.TimingColumn(slot))
		scheduled, err := ParseSendTime(timing)
		if err != nil {
			tr.logger.Warn("unparseable send timing, skipping slot",
				zap.String("campaign_id", id),
				zap.Int("slot", slot),
				zap.String("timing", timing))
			continue
		}
		if !DueNow(scheduled, tr.now()) {
			tr.logger.Info("slot not due yet",
				zap.String("campaign_id", id),
				zap.Int("slot", slot),
				zap.String("timing", timing))
			continue
		}

		subject := campaignSubject(campaigns.Cell(row, campaign.ColumnCampaignText))
		tr.sendSlot(ctx, id, slot, body, subject, phones, emails)
	}
}

func (tr *Trigger) sendSlot(ctx context.Context, id string, slot int, body, subject string, phones, emails []string) {
	for _, phone := range phones {
		if tr.sms != nil && tr.sms.IsConfigured() {
			if err := tr.sms.Send(ctx, phone, body); err != nil {
				tr.logger.Error("sms send failed",
					zap.String("campaign_id", id),
					zap.Int("slot", slot),
					zap.String("to", phone),
					zap.Error(err))
			}
		}
		if tr.whatsapp != nil && tr.whatsapp.IsConfigured() {
			if err := tr.whatsapp.Send(ctx, phone, body); err != nil {
				tr.logger.Error("whatsapp send failed",
					zap.String("campaign_id", id),
					zap.Int("slot", slot),
					zap.String("to", phone),
					zap.Error(err))
			}
		}
	}
	for _, addr := range emails {
		if tr.email != nil && tr.email.IsConfigured() {
			if err := tr.email.SendEmail(ctx, addr, subject, body); err != nil {
				tr.logger.Error("email send failed",
					zap.String("campaign_id", id),
					zap.Int("slot", slot),
					zap.String("to", addr),
					zap.Error(err))
			}
		}
	}
}

// collectRecipients gathers the unique phone numbers and email addresses
// of clients whose category overlaps the campaign target. Overlap here is
// looser than the reconciliation match: any word of the target appearing
// inside the client category counts.
func (tr *Trigger) collectRecipients(clients *sheets.Table, target string) (phones, emails []string) {
	seenPhone := map[string]bool{}
	seenEmail := map[string]bool{}
	hasEmailCol := clients.HasColumn(enrich.ColumnClientEmail)

	for i := 0; i < clients.Len(); i++ {
		if !categoryOverlaps(target, clients.Cell(i, enrich.ColumnClientCategory)) {
			continue
		}
		if phone := strings.TrimSpace(clients.Cell(i, enrich.ColumnClientPhone)); phone != "" && !seenPhone[phone] {
			seenPhone[phone] = true
			phones = append(phones, phone)
		}
		if !hasEmailCol {
			continue
		}
		if addr := strings.TrimSpace(clients.Cell(i, enrich.ColumnClientEmail)); addr != "" && !seenEmail[addr] {
			seenEmail[addr] = true
			emails = append(emails, addr)
		}
	}
	return phones, emails
}

func categoryOverlaps(target, category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(target)) {
		if strings.Contains(category, word) {
			return true
		}
	}
	return false
}

func campaignSubject(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "A message from your hotel"
	}
	runes := []rune(text)
	if len(runes) > 78 {
		return string(runes[:75]) + "..."
	}
	return text
}
