package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/campaign"
	"github.com/hotelrev/revman/internal/config"
	"github.com/hotelrev/revman/internal/dispatch"
	"github.com/hotelrev/revman/internal/enrich"
	"github.com/hotelrev/revman/internal/gemini"
	"github.com/hotelrev/revman/internal/pipeline"
	"github.com/hotelrev/revman/internal/sheets"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		fatal("configuration", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fatal("creating logger", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, err := sheets.NewGoogleStore(ctx, cfg.SpreadsheetID, cfg.GoogleCredentialsFile, cfg.SheetTimeout, logger)
	if err != nil {
		fatal("connecting to google sheets", err)
	}

	llm, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fatal("creating gemini client", err)
	}
	logger.Info("gemini client ready", zap.String("model", llm.ModelName()))

	retrier := gemini.NewRetrier(llm, cfg.MaxRetries, cfg.RetryDelay, cfg.RateLimitWait, logger)

	p := pipeline.New(pipeline.Options{
		Store:      store,
		Enricher:   enrich.NewEnricher(retrier, cfg.RequestDelay, logger),
		Reconciler: campaign.NewReconciler(cfg.RequestDelay, logger),
		Expander:   initExpander(cfg, store, logger),
		Trigger:    initTrigger(cfg, logger),
		BatchSize:  cfg.BatchSize,
		Logger:     logger,
	})

	if err := p.Run(ctx); err != nil {
		fatal("pipeline run", err)
	}
}

// initExpander returns nil when the frontend owns the message template
// columns, leaving the sheet schema alone.
func initExpander(cfg *config.Config, store sheets.Store, logger *zap.Logger) *campaign.Expander {
	if cfg.FrontendTemplateColumns {
		return nil
	}
	return campaign.NewExpander(store, pipeline.CampaignsSheet, logger)
}

func initTrigger(cfg *config.Config, logger *zap.Logger) pipeline.Trigger {
	if !cfg.MsgServiceEnabled {
		return nil
	}
	sms := dispatch.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioSMSFrom, logger)
	whatsapp := dispatch.NewWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger)
	email := dispatch.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, logger)
	return dispatch.NewTrigger(sms, whatsapp, email, logger)
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
