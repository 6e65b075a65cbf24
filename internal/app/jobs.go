package app

import (
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/talkincode/supermarkt/internal/domain"
)

const shelfEventRetention = 365 * 24 * time.Hour

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if a.appConfig.Shelf.AutoAdvance {
		spec := strings.TrimSpace(a.appConfig.Shelf.AdvanceSpec)
		if spec == "" {
			spec = "@daily"
		}
		if _, err = a.sched.AddFunc(spec, a.SchedAdvanceShelfTask); err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	if a.gormDB != nil {
		_, err = a.sched.AddFunc("@daily", a.SchedClearExpireData)
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedAdvanceShelfTask moves every live product one day forward
func (a *Application) SchedAdvanceShelfTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	rep := a.inventory.AdvanceDay()
	zap.L().Info("shelf advanced one day",
		zap.String("namespace", "shelf"),
		zap.Int("products", rep.Advanced),
		zap.Int("expired", len(rep.Expired)),
		zap.Int("to_remove", len(rep.ToRemove)))

	if a.appConfig.Shelf.AutoSweep {
		if ids := a.inventory.Sweep(); len(ids) > 0 {
			zap.L().Info("removed products from shelf",
				zap.String("namespace", "shelf"),
				zap.Strings("ids", ids))
		}
	}
}

// SchedClearExpireData removes old shelf events
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	a.gormDB.
		Where("event_time < ? ", time.Now().
			Add(-shelfEventRetention)).Delete(domain.ShelfEvent{})
}
