package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// initCron sets up the midnight maintenance job: the daily-inspiration cache
// is keyed per local day, so the whole namespace is cleared when the day
// rolls over. Entry TTLs already expire at midnight; the sweep removes
// anything a clock skew left behind.
func (a *App) initCron() {
	c := cron.New(cron.WithLocation(a.loc))

	c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := a.cache.DeletePrefix(ctx, "inspiration:"); err != nil {
			a.logger.Error("inspiration cache sweep failed", "error", err)
			return
		}
		a.logger.Info("inspiration cache swept")
	})

	a.cron = c
}
