package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/gemini"
	"github.com/hotelrev/revman/internal/sheets"
)

// Clients sheet columns.
const (
	ColumnClientID        = "Client ID"
	ColumnClientName      = "Client Name"
	ColumnChatText        = "Chat Text"
	ColumnClientType      = "Client Type"
	ColumnClientInterests = "Client Interests"
	ColumnClientTraits    = "Client Traits"
	ColumnClientCategory  = "Client Category"
	ColumnClientPhone     = "Client Phone"
	ColumnClientEmail     = "Client Email"
)

// ManagedColumns are the derived columns this system owns on the Clients
// sheet. Everything else is user-edited and never written back.
var ManagedColumns = []string{
	ColumnClientType,
	ColumnClientInterests,
	ColumnClientTraits,
	ColumnClientCategory,
}

// Profile is the structured result of the first LLM pass over a chat.
type Profile struct {
	ClientType string   `json:"client_type"`
	Interests  []string `json:"client_interests"`
	Traits     []string `json:"client_traits"`
}

// LLM is the retry-wrapped completion surface the enricher depends on.
type LLM interface {
	CompleteWithRetry(ctx context.Context, prompt string) (string, bool)
}

// Enricher fills the managed columns of client rows whose chat transcript
// has not been analyzed yet. Already-populated fields are never re-requested.
type Enricher struct {
	llm    LLM
	delay  time.Duration
	sleep  func(time.Duration)
	logger *zap.Logger
}

func NewEnricher(llm LLM, delay time.Duration, logger *zap.Logger) *Enricher {
	return &Enricher{
		llm:    llm,
		delay:  delay,
		sleep:  time.Sleep,
		logger: logger,
	}
}

// EnrichBatch processes rows [start, end) of the clients table in order.
// Each row runs at most two sequential inference calls: profile extraction,
// then category inference. A courtesy delay follows every step that ran,
// whatever its outcome. Rows with an empty chat are skipped entirely.
func (e *Enricher) EnrichBatch(ctx context.Context, clients *sheets.Table, start, end int) {
	if end > clients.Len() {
		end = clients.Len()
	}
	for i := start; i < end; i++ {
		clientID := strings.TrimSpace(clients.Cell(i, ColumnClientID))
		if clientID == "" {
			clientID = fmt.Sprintf("C%d", i+1)
		}
		chat := strings.TrimSpace(clients.Cell(i, ColumnChatText))
		if chat == "" {
			continue
		}

		if strings.TrimSpace(clients.Cell(i, ColumnClientType)) == "" {
			e.extractProfile(ctx, clients, i, clientID, chat)
			e.sleep(e.delay)
		}

		if strings.TrimSpace(clients.Cell(i, ColumnClientCategory)) == "" {
			e.inferCategory(ctx, clients, i, clientID)
			e.sleep(e.delay)
		}
	}
}

func (e *Enricher) extractProfile(ctx context.Context, clients *sheets.Table, row int, clientID, chat string) {
	e.logger.Info("analyzing client", zap.String("client_id", clientID))

	text, ok := e.llm.CompleteWithRetry(ctx, profilePrompt(chat))
	if !ok {
		e.logger.Warn("profile extraction got no result",
			zap.String("client_id", clientID),
			zap.String("stage", "profile"))
		return
	}

	var profile Profile
	if !gemini.ExtractJSONObject(text, &profile, e.logger) {
		e.logger.Warn("client profile could not be parsed",
			zap.String("client_id", clientID),
			zap.String("stage", "profile"))
		return
	}

	clients.SetCell(row, ColumnClientType, profile.ClientType)
	clients.SetCell(row, ColumnClientInterests, strings.Join(profile.Interests, ", "))
	clients.SetCell(row, ColumnClientTraits, strings.Join(profile.Traits, ", "))
	e.logger.Info("client profile updated", zap.String("client_id", clientID))
}

func (e *Enricher) inferCategory(ctx context.Context, clients *sheets.Table, row int, clientID string) {
	clientType := clients.Cell(row, ColumnClientType)
	interests := clients.Cell(row, ColumnClientInterests)
	traits := clients.Cell(row, ColumnClientTraits)

	// Nothing to base a category on; short-circuit without a service call.
	if clientType == "" && interests == "" && traits == "" {
		clients.SetCell(row, ColumnClientCategory, "")
		return
	}

	e.logger.Info("inferring category", zap.String("client_id", clientID))

	text, ok := e.llm.CompleteWithRetry(ctx, categoryPrompt(clientType, interests, traits))
	if !ok {
		e.logger.Warn("category inference got no result",
			zap.String("client_id", clientID),
			zap.String("stage", "category"))
		return
	}

	category := titleCase(gemini.StripFences(text))
	clients.SetCell(row, ColumnClientCategory, category)
	e.logger.Info("client category set",
		zap.String("client_id", clientID),
		zap.String("category", category))
}

// titleCase uppercases the first letter of every word, matching how category
// labels are stored ("leisure, family" -> "Leisure, Family").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
