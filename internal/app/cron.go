package app

import (
	"context"
	"fmt"
	"time"

	"github.com/articlekit/core/internal/config"
	"github.com/articlekit/core/internal/modules/article"
	"github.com/articlekit/core/internal/modules/search"
	pkgcron "github.com/articlekit/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, articles *article.Service, searchSvc *search.Service, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "reconcile_expired_articles",
		Description: "deactivate articles whose expiration date has passed",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := articles.ReconcileExpired(ctx)
			if err != nil {
				cronLogger.Warn("expired-article reconciliation failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info(fmt.Sprintf("deactivated %d expired articles", n))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "sync_search_index",
		Description: "full push of article documents to MeiliSearch",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			if !cfg.MeiliSearch.Enable {
				return nil
			}
			cronLogger.Info("pushing full article index to MeiliSearch...")
			if err := searchSvc.IndexAll(ctx); err != nil {
				cronLogger.Warn("search index push failed", zap.Error(err))
				return err
			}
			cronLogger.Info("search index push complete")
			return nil
		},
	})
}
