package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/campaign"
	"github.com/hotelrev/revman/internal/enrich"
	"github.com/hotelrev/revman/internal/sheets"
)

const (
	ClientsSheet   = "Clients"
	CampaignsSheet = "Campaigns"
)

// Trigger fires due campaign messages. Wired only when the message
// service is enabled.
type Trigger interface {
	Run(ctx context.Context, campaigns, clients *sheets.Table)
}

// Pipeline runs one full reconciliation pass: client enrichment, campaign
// lifecycle, optional schema expansion and optional message dispatch. Each
// run is stateless; the spreadsheet is the only store. Phases run strictly
// in order on a single worker, and the pipeline assumes it is the only
// writer of the managed columns while a run is in flight.
type Pipeline struct {
	store      sheets.Store
	enricher   *enrich.Enricher
	reconciler *campaign.Reconciler
	expander   *campaign.Expander
	trigger    Trigger
	batchSize  int
	logger     *zap.Logger
}

type Options struct {
	Store      sheets.Store
	Enricher   *enrich.Enricher
	Reconciler *campaign.Reconciler
	Expander   *campaign.Expander // nil when the frontend owns template columns
	Trigger    Trigger            // nil when the message service is disabled
	BatchSize  int
	Logger     *zap.Logger
}

func New(opts Options) *Pipeline {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Pipeline{
		store:      opts.Store,
		enricher:   opts.Enricher,
		reconciler: opts.Reconciler,
		expander:   opts.Expander,
		trigger:    opts.Trigger,
		batchSize:  batchSize,
		logger:     opts.Logger,
	}
}

// Run executes one pass. An empty sheet skips its phase; hard read or
// write failures abort the run.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))

	clients, err := p.runClientsPhase(ctx, logger)
	if err != nil {
		return err
	}

	campaigns, err := p.runCampaignsPhase(ctx, logger, clients)
	if err != nil {
		return err
	}

	if p.expander != nil && campaigns != nil {
		if err := p.expander.Expand(ctx, campaigns); err != nil {
			return fmt.Errorf("expanding campaign schema: %w", err)
		}
	}

	if p.trigger != nil && campaigns != nil && clients != nil {
		p.trigger.Run(ctx, campaigns, clients)
	}

	logger.Info("run complete")
	return nil
}

func (p *Pipeline) runClientsPhase(ctx context.Context, logger *zap.Logger) (*sheets.Table, error) {
	clients, err := p.store.ReadTable(ctx, ClientsSheet)
	if err != nil {
		if errors.Is(err, sheets.ErrEmptyTable) {
			logger.Warn("clients sheet is empty, skipping enrichment")
			return nil, nil
		}
		return nil, fmt.Errorf("reading clients sheet: %w", err)
	}
	logger.Info("loaded clients", zap.Int("rows", clients.Len()))

	headerWidth := len(clients.Headers)
	clients.EnsureColumns(enrich.ManagedColumns...)
	if len(clients.Headers) > headerWidth {
		if err := p.store.WriteHeader(ctx, ClientsSheet, clients.Headers); err != nil {
			return nil, fmt.Errorf("writing clients header: %w", err)
		}
	}

	// Each batch is written back before the next one starts, so a failure
	// mid-run keeps the inference work already paid for.
	for start := 0; start < clients.Len(); start += p.batchSize {
		end := start + p.batchSize
		if end > clients.Len() {
			end = clients.Len()
		}
		logger.Info("enriching batch", zap.Int("start", start), zap.Int("end", end))
		p.enricher.EnrichBatch(ctx, clients, start, end)

		if err := p.writeClientChanges(ctx, logger, clients); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

// writeClientChanges re-reads the sheet and writes back only the managed
// columns that differ from its current contents.
func (p *Pipeline) writeClientChanges(ctx context.Context, logger *zap.Logger, clients *sheets.Table) error {
	authoritative, err := p.store.ReadTable(ctx, ClientsSheet)
	if err != nil && !errors.Is(err, sheets.ErrEmptyTable) {
		return fmt.Errorf("re-reading clients sheet: %w", err)
	}

	diff := enrich.DetectChanges(authoritative, clients, enrich.ManagedColumns)
	if !diff.Changed {
		logger.Info("no client changes to write")
		return nil
	}

	logger.Info("writing client columns", zap.Strings("columns", diff.Columns))
	if err := p.store.WriteColumns(ctx, ClientsSheet, clients, diff.Columns); err != nil {
		return fmt.Errorf("writing clients sheet: %w", err)
	}
	return nil
}

func (p *Pipeline) runCampaignsPhase(ctx context.Context, logger *zap.Logger, clients *sheets.Table) (*sheets.Table, error) {
	campaigns, err := p.store.ReadTable(ctx, CampaignsSheet)
	if err != nil {
		if errors.Is(err, sheets.ErrEmptyTable) {
			logger.Warn("campaigns sheet is empty, skipping reconciliation")
			return nil, nil
		}
		return nil, fmt.Errorf("reading campaigns sheet: %w", err)
	}
	logger.Info("loaded campaigns", zap.Int("rows", campaigns.Len()))

	headerWidth := len(campaigns.Headers)
	campaigns.EnsureColumns(campaign.ManagedColumns...)
	if len(campaigns.Headers) > headerWidth {
		if err := p.store.WriteHeader(ctx, CampaignsSheet, campaigns.Headers); err != nil {
			return nil, fmt.Errorf("writing campaigns header: %w", err)
		}
	}

	if clients == nil {
		clients = sheets.NewTable(nil)
	}

	summary := p.reconciler.Run(campaigns, clients)
	if !summary.HasChanges() {
		logger.Info("no campaign changes to write")
		return campaigns, nil
	}

	logger.Info("writing campaign columns", zap.Strings("columns", summary.Columns()))
	if err := p.store.WriteColumns(ctx, CampaignsSheet, campaigns, summary.Columns()); err != nil {
		return nil, fmt.Errorf("writing campaigns sheet: %w", err)
	}
	return campaigns, nil
}
