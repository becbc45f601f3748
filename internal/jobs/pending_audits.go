package jobs

import (
	"context"
	"database/sql"

	"github.com/Spok95/compliance-audit/internal/db"
	"github.com/Spok95/compliance-audit/internal/metrics"
	"github.com/Spok95/compliance-audit/internal/observability"
)

// RefreshPendingGauge обновляет метрику открытых (pending) аудитов —
// её показывает дашборд проверяющих.
func RefreshPendingGauge(database *sql.DB) Job {
	return func(ctx context.Context) error {
		n, err := db.CountPendingAudits(ctx, database)
		if err != nil {
			observability.CaptureErr(err)
			return err
		}
		metrics.PendingAudits.Set(float64(n))
		return nil
	}
}
