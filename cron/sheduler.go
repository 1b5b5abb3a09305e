package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCron schedules every registered job and starts the scheduler.
func StartCron() (*cron.Cron, error) {
	c := cron.New()
	for name, j := range Jobs() {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		logrus.WithFields(logrus.Fields{"job": name, "schedule": j.Schedule}).Info("cron job scheduled")
	}
	c.Start()
	return c, nil
}
