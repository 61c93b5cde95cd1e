package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/campaign"
	"github.com/hotelrev/revman/internal/enrich"
	"github.com/hotelrev/revman/internal/sheets"
)

type sentMessage struct {
	to   string
	body string
}

type fakeSender struct {
	name       string
	configured bool
	err        error
	sent       []sentMessage
}

func (f *fakeSender) Send(ctx context.Context, to, body string) error {
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return f.err
}

func (f *fakeSender) Name() string       { return f.name }
func (f *fakeSender) IsConfigured() bool { return f.configured }

type fakeEmailSender struct {
	configured bool
	sent       []sentMessage
	subjects   []string
}

func (f *fakeEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeEmailSender) Name() string       { return "email" }
func (f *fakeEmailSender) IsConfigured() bool { return f.configured }

var dispatchCampaignHeaders = []string{
	campaign.ColumnCampaignID, campaign.ColumnCampaignText, campaign.ColumnTargetCategory,
	campaign.ColumnStatus, campaign.ColumnMessageCount,
	campaign.TemplateColumn(1), campaign.TimingColumn(1),
	campaign.TemplateColumn(2), campaign.TimingColumn(2),
}

func dispatchCampaigns(rows ...[]string) *sheets.Table {
	values := [][]string{dispatchCampaignHeaders}
	values = append(values, rows...)
	return sheets.NewTable(values)
}

func dispatchClients(rows ...[]string) *sheets.Table {
	values := [][]string{{enrich.ColumnClientName, enrich.ColumnClientCategory, enrich.ColumnClientPhone, enrich.ColumnClientEmail}}
	values = append(values, rows...)
	return sheets.NewTable(values)
}

func newTestTrigger(sms, whatsapp *fakeSender, email *fakeEmailSender, now time.Time) *Trigger {
	tr := NewTrigger(sms, whatsapp, email, zap.NewNop())
	tr.now = func() time.Time { return now }
	return tr
}

func TestTrigger_SendsDueSlotToMatchedClients(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Spa weekend offer", "Leisure Traveler", "ACTIVE", "1", "20% off spa", "10:00", "", ""},
	)
	// "Event Planner" shares no word with the target, so Omri stays out
	// even under the loose word-overlap match.
	clients := dispatchClients(
		[]string{"Dana", "Leisure Traveler", "+15550001", "dana@example.com"},
		[]string{"Omri", "Event Planner", "+15550002", "omri@example.com"},
	)

	sms := &fakeSender{name: "sms", configured: true}
	wa := &fakeSender{name: "whatsapp", configured: true}
	email := &fakeEmailSender{configured: true}
	tr := newTestTrigger(sms, wa, email, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)

	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+15550001", sms.sent[0].to)
	assert.Equal(t, "20% off spa", sms.sent[0].body)
	require.Len(t, wa.sent, 1)
	require.Len(t, email.sent, 1)
	assert.Equal(t, "dana@example.com", email.sent[0].to)
	assert.Equal(t, "Spa weekend offer", email.subjects[0])
}

func TestTrigger_WordOverlapMatchesBroaderThanReconciliation(t *testing.T) {
	// "Traveler" appears inside both client categories, so the dispatch
	// match fans out to both even though the exact-token reconciliation
	// match would pick neither.
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Frequent Traveler", "ACTIVE", "1", "Hi there", "10:00", "", ""},
	)
	clients := dispatchClients(
		[]string{"Dana", "Leisure Traveler", "+15550001", ""},
		[]string{"Omri", "Business Traveler", "+15550002", ""},
		[]string{"Noa", "Event Planner", "+15550003", ""},
	)

	sms := &fakeSender{name: "sms", configured: true}
	tr := newTestTrigger(sms, &fakeSender{}, &fakeEmailSender{}, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)

	require.Len(t, sms.sent, 2)
	assert.Equal(t, "+15550001", sms.sent[0].to)
	assert.Equal(t, "+15550002", sms.sent[1].to)
}

func TestTrigger_SkipsSlotBeforeSendTime(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Leisure Traveler", "ACTIVE", "1", "Hi there", "22:00", "", ""},
	)
	clients := dispatchClients([]string{"Dana", "Leisure Traveler", "+15550001", ""})

	sms := &fakeSender{name: "sms", configured: true}
	tr := newTestTrigger(sms, &fakeSender{}, &fakeEmailSender{}, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)
	assert.Empty(t, sms.sent)
}

func TestTrigger_SkipsInactiveAndZeroCountCampaigns(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Leisure Traveler", "INACTIVE", "1", "Hi", "10:00", "", ""},
		[]string{"CMP-0002", "Hello", "Leisure Traveler", "ACTIVE", "0", "Hi", "10:00", "", ""},
		[]string{"CMP-0003", "Hello", "Leisure Traveler", "ACTIVE", "n/a", "Hi", "10:00", "", ""},
	)
	clients := dispatchClients([]string{"Dana", "Leisure Traveler", "+15550001", ""})

	sms := &fakeSender{name: "sms", configured: true}
	tr := newTestTrigger(sms, &fakeSender{}, &fakeEmailSender{}, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)
	assert.Empty(t, sms.sent)
}

func TestTrigger_SkipsEmptyTemplateAndBadTiming(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Leisure Traveler", "ACTIVE", "2", "", "10:00", "Second message", "whenever"},
	)
	clients := dispatchClients([]string{"Dana", "Leisure Traveler", "+15550001", ""})

	sms := &fakeSender{name: "sms", configured: true}
	tr := newTestTrigger(sms, &fakeSender{}, &fakeEmailSender{}, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)
	assert.Empty(t, sms.sent)
}

func TestTrigger_SendFailureDoesNotAbortRun(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Leisure Traveler", "ACTIVE", "1", "Hi", "10:00", "", ""},
	)
	clients := dispatchClients(
		[]string{"Dana", "Leisure Traveler", "+15550001", ""},
		[]string{"Noa", "Leisure Traveler", "+15550002", ""},
	)

	sms := &fakeSender{name: "sms", configured: true, err: errors.New("carrier rejected")}
	tr := newTestTrigger(sms, &fakeSender{}, &fakeEmailSender{}, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)
	assert.Len(t, sms.sent, 2)
}

func TestTrigger_DeduplicatesRecipients(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Leisure Traveler", "ACTIVE", "1", "Hi", "10:00", "", ""},
	)
	clients := dispatchClients(
		[]string{"Dana", "Leisure Traveler", "+15550001", "dana@example.com"},
		[]string{"Dana again", "Leisure Traveler", "+15550001", "dana@example.com"},
	)

	sms := &fakeSender{name: "sms", configured: true}
	email := &fakeEmailSender{configured: true}
	tr := newTestTrigger(sms, &fakeSender{}, email, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)
	assert.Len(t, sms.sent, 1)
	assert.Len(t, email.sent, 1)
}

func TestTrigger_UnconfiguredChannelsAreQuiet(t *testing.T) {
	campaigns := dispatchCampaigns(
		[]string{"CMP-0001", "Hello", "Leisure Traveler", "ACTIVE", "1", "Hi", "10:00", "", ""},
	)
	clients := dispatchClients([]string{"Dana", "Leisure Traveler", "+15550001", "dana@example.com"})

	sms := &fakeSender{name: "sms", configured: false}
	email := &fakeEmailSender{configured: false}
	tr := newTestTrigger(sms, &fakeSender{}, email, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local))

	tr.Run(context.Background(), campaigns, clients)
	assert.Empty(t, sms.sent)
	assert.Empty(t, email.sent)
}

func TestCampaignSubject(t *testing.T) {
	assert.Equal(t, "A message from your hotel", campaignSubject("  "))
	assert.Equal(t, "Spa weekend offer", campaignSubject("Spa weekend offer"))

	long := strings.Repeat("é", 100)
	subject := campaignSubject(long)
	assert.Equal(t, strings.Repeat("é", 75)+"...", subject)
	assert.True(t, utf8.ValidString(subject))
}

func TestTrigger_MissingColumnsIsNoOp(t *testing.T) {
	campaigns := sheets.NewTable([][]string{{campaign.ColumnCampaignID}, {"CMP-0001"}})
	clients := dispatchClients([]string{"Dana", "Leisure Traveler", "+15550001", ""})

	sms := &fakeSender{name: "sms", configured: true}
	tr := newTestTrigger(sms, &fakeSender{}, &fakeEmailSender{}, time.Now())

	tr.Run(context.Background(), campaigns, clients)
	assert.Empty(t, sms.sent)
}
