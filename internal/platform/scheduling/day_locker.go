// Package scheduling runs the in-process cron jobs of the server, currently
// the nightly lock of past surgery days.
package scheduling

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DayLocker is the service method the job calls.
type DayLocker interface {
	LockDate(ctx context.Context, date time.Time) error
}

// Locker schedules the daily lock of yesterday's surgery day, so edits stop
// once the day is over. The default spec fires at 16:00 server time.
type Locker struct {
	cron   *cron.Cron
	spec   string
	days   DayLocker
	logger zerolog.Logger
	now    func() time.Time
}

func NewLocker(spec string, days DayLocker, logger zerolog.Logger) *Locker {
	return &Locker{
		cron:   cron.New(),
		spec:   spec,
		days:   days,
		logger: logger,
		now:    time.Now,
	}
}

func (l *Locker) Start() error {
	if _, err := l.cron.AddFunc(l.spec, l.run); err != nil {
		return err
	}
	l.cron.Start()
	l.logger.Info().Str("spec", l.spec).Msg("day locker started")
	return nil
}

// Stop waits for a running job to finish.
func (l *Locker) Stop() {
	ctx := l.cron.Stop()
	<-ctx.Done()
	l.logger.Info().Msg("day locker stopped")
}

func (l *Locker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	l.LockYesterday(ctx)
}

// LockYesterday locks the day before the current date. Also called directly
// by the lock-days command.
func (l *Locker) LockYesterday(ctx context.Context) {
	yesterday := l.now().AddDate(0, 0, -1)
	if err := l.days.LockDate(ctx, yesterday); err != nil {
		l.logger.Error().Err(err).Msg("nightly day lock failed")
	}
}
