package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"meter-bot/internal/reminder"
)

// Start wires the two periodic jobs: the monthly reminder cycle on the
// configured day-of-month and hour, and a minute sweep for due deferred
// follow-ups. The cron expression runs in loc, matching the original
// "day=1 hour=9 Europe/Moscow" schedule.
func Start(svc *reminder.Service, loc *time.Location, remindDay, remindHour int) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.CronJob(fmt.Sprintf("0 %d %d * *", remindHour, remindDay), false),
		gocron.NewTask(func() { svc.RunMonthlyCycle(time.Now()) }),
	)
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() { svc.RunDeferredSweep(time.Now()) }),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}
