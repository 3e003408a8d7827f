package article

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/articlekit/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryService builds a Service over a dry-run session: queries are compiled
// but never sent, so the generated SQL can be asserted without a database.
func dryService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/articlekit?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &Service{db: db}
}

func TestActiveQueryWindow(t *testing.T) {
	svc := dryService(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	var articles []models.ArticleModel
	tx := svc.activeQuery(context.Background(), now).Find(&articles)
	if tx.Error != nil {
		t.Fatal(tx.Error)
	}

	sql := tx.Statement.SQL.String()
	for _, want := range []string{
		"is_active = ?",
		"publish_date <= ?",
		"expiration_date IS NULL OR expiration_date >= ?",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("query %q missing %q", sql, want)
		}
	}

	// the pivot binds twice: once for the publish window, once for expiry
	pivots := 0
	for _, v := range tx.Statement.Vars {
		if ts, ok := v.(time.Time); ok && ts.Equal(now) {
			pivots++
		}
	}
	if pivots != 2 {
		t.Errorf("pivot time bound %d times, want 2 (vars: %v)", pivots, tx.Statement.Vars)
	}
}

func TestLiveQueryStatusGate(t *testing.T) {
	now := time.Now()

	t.Run("ordinary user joins live statuses", func(t *testing.T) {
		svc := dryService(t)
		var articles []models.ArticleModel
		tx := svc.liveQuery(context.Background(), now, false).Find(&articles)
		if tx.Error != nil {
			t.Fatal(tx.Error)
		}
		sql := tx.Statement.SQL.String()
		if !strings.Contains(sql, "JOIN article_statuses") {
			t.Errorf("query %q missing status join", sql)
		}
		if !strings.Contains(sql, "article_statuses.is_live = ?") {
			t.Errorf("query %q missing live filter", sql)
		}
	})

	t.Run("superuser bypasses the status gate", func(t *testing.T) {
		svc := dryService(t)
		var articles []models.ArticleModel
		tx := svc.liveQuery(context.Background(), now, true).Find(&articles)
		if tx.Error != nil {
			t.Fatal(tx.Error)
		}
		sql := tx.Statement.SQL.String()
		if strings.Contains(sql, "article_statuses") {
			t.Errorf("superuser query %q must not touch statuses", sql)
		}
		if !strings.Contains(sql, "is_active = ?") {
			t.Errorf("superuser query %q still gates on activity", sql)
		}
	})
}
