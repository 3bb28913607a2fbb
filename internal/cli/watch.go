package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"taskboard/internal/service"
)

// watchCommand prints the board report on a schedule until ctx is cancelled.
func (a *App) watchCommand(ctx context.Context, args []string) error {
	fs := newFlagSet("watch")
	at := fs.String("at", "", "print the report daily at HH:MM instead of every report_interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scheduler := service.NewSchedulerService(time.Local, a.logger.WithPrefix("cron"))
	job := func() {
		if err := a.reportCommand(); err != nil {
			a.logger.Error("report", "err", err)
		}
	}

	var (
		id  cron.EntryID
		err error
	)
	if *at != "" {
		id, err = scheduler.ScheduleDaily(*at, job)
	} else {
		id, err = scheduler.ScheduleInterval(a.cfg.ReportInterval, job)
	}
	if err != nil {
		return fmt.Errorf("%w: schedule report: %v", ErrUsage, err)
	}

	job()
	scheduler.Start()
	defer scheduler.Stop()
	a.logger.Info("watching board", "next", scheduler.Next(id))

	<-ctx.Done()
	a.logger.Info("watch stopped")
	return nil
}
