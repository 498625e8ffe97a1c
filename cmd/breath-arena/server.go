package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericogr/breath-arena/internal/constants"
	"github.com/ericogr/breath-arena/internal/logging"
)

const (
	reaperInterval  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// expirer is the part of the battle service the reaper drives.
type expirer interface {
	ExpireBattles(now time.Time) int
	ActiveBattles() int
}

// run serves HTTP and reaps stale battles until ctx is cancelled or either
// side fails.
func run(ctx context.Context, addr string, handler http.Handler, battles expirer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("Server shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		startBattleReaper(ctx, battles, reaperInterval)
		return nil
	})
	return g.Wait()
}

// startBattleReaper periodically drops finished and abandoned battles.
func startBattleReaper(ctx context.Context, battles expirer, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := battles.ExpireBattles(now); n > 0 {
				logging.Info("expired battles", logging.Fields{
					constants.LogFieldCount: n,
					"active":                battles.ActiveBattles(),
				})
			}
		}
	}
}
