package rates

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RateStore is the slice of the store the refresher needs.
type RateStore interface {
	UpsertRate(code, country string, rate float64) error
}

// Refresher periodically pulls both feeds and upserts the joined result.
// Failures are logged and retried on the next tick; they never bubble
// past Run.
type Refresher struct {
	client   *Client
	store    RateStore
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewRefresher wires a refresher. A nil logger means silent operation.
func NewRefresher(client *Client, store RateStore, interval time.Duration, logger *zap.SugaredLogger) *Refresher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Refresher{client: client, store: store, interval: interval, log: logger}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. Meant to be started as `go refresher.Run(ctx)` from main.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Infow("Rates refresher stopping")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// RefreshOnce performs a single refresh pass. Exposed for tests and for
// one-shot invocations.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	rateByCode, err := r.client.FetchRates(ctx)
	if err != nil {
		return err
	}

	// Country names are decoration; a failed countries feed does not
	// block the rate refresh.
	countryByCode, err := r.client.FetchCountries(ctx)
	if err != nil {
		r.log.Warnw("Countries feed failed, storing rates without names", "error", err)
		countryByCode = map[string]string{}
	}

	var stored int
	for code, rateValue := range rateByCode {
		if err := r.store.UpsertRate(code, countryByCode[code], rateValue); err != nil {
			return err
		}
		stored++
	}

	r.log.Infow("Exchange rates refreshed", "currencies", stored)
	return nil
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.RefreshOnce(ctx); err != nil {
		r.log.Errorw("Rates refresh failed", "error", err)
	}
}
