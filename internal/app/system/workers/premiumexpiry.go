// internal/app/system/workers/premiumexpiry.go

// Package workers holds the app's background loops.
package workers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	subscriptionstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/subscriptions"
	userstore "github.com/noyonalways/tech-tips-hub-api/internal/app/store/users"
)

// PremiumExpiry is a background worker that closes out subscriptions
// whose paid window has passed and revokes the premium flag on their
// users. The premium content gate checks the window itself, so the
// worker only keeps the stored state consistent with it.
type PremiumExpiry struct {
	subs     *subscriptionstore.Store
	users    *userstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewPremiumExpiry creates the worker. Interval is how often the sweep
// runs; an hour is plenty since the gate does not depend on it.
func NewPremiumExpiry(db *mongo.Database, logger *zap.Logger, interval time.Duration) *PremiumExpiry {
	return &PremiumExpiry{
		subs:     subscriptionstore.New(db),
		users:    userstore.New(db),
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *PremiumExpiry) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("premium expiry worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *PremiumExpiry) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("premium expiry worker stopped")
}

func (w *PremiumExpiry) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one pass: expire ended subscriptions and drop the premium
// flag for users without another active subscription.
func (w *PremiumExpiry) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	ended, err := w.subs.ExpireEnded(ctx, now)
	if err != nil {
		w.log.Error("premium expiry sweep failed", zap.Error(err))
		return
	}
	if len(ended) == 0 {
		return
	}

	revoked := 0
	for _, sub := range ended {
		// A user may have paid again before the old window closed.
		if _, err := w.subs.GetActiveForUser(ctx, sub.User, now); err == nil {
			continue
		}
		if err := w.users.SetPremium(ctx, sub.User, false); err != nil {
			w.log.Error("premium revoke failed",
				zap.String("user", sub.User.Hex()), zap.Error(err))
			continue
		}
		revoked++
	}

	w.log.Info("premium expiry sweep finished",
		zap.Int("expired", len(ended)), zap.Int("revoked", revoked))
}
