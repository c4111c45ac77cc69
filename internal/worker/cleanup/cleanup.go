// Package cleanup は期限切れセッションのバックグラウンド削除処理を提供する。
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/lifelog/internal/repository"
)

// Purger は期限切れセッションを定期的に削除する。
type Purger struct {
	sessionRepo repository.SessionRepository
	logger      *slog.Logger
}

// NewPurger はPurgerの新しいインスタンスを生成する。
func NewPurger(sessionRepo repository.SessionRepository, logger *slog.Logger) *Purger {
	return &Purger{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Start は指定間隔のティッカーでクリーンアップを起動する。
// コンテキストがキャンセルされるまで実行を継続する。
func (p *Purger) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.logger.Info("セッションクリーンアップを開始しました",
		slog.Duration("interval", interval),
	)

	// 起動直後に1回実行
	if err := p.RunOnce(ctx); err != nil {
		p.logger.Error("セッションクリーンアップの実行に失敗しました",
			slog.String("error", err.Error()),
		)
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("セッションクリーンアップを停止しました")
			return
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Error("セッションクリーンアップの実行に失敗しました",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// RunOnce は期限切れセッションを1回削除する。
func (p *Purger) RunOnce(ctx context.Context) error {
	start := time.Now()

	deleted, err := p.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}

	if deleted > 0 {
		p.logger.Info("期限切れセッションを削除しました",
			slog.Int64("deleted_count", deleted),
			slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
		)
	}

	return nil
}
