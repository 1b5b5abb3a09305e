package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	var got []string
	Register("testregistryjob", "@every 1h", func(args ...string) {
		got = args
	})
	defer Unregister("testregistryjob")

	j, ok := Jobs()["testregistryjob"]
	require.True(t, ok)
	assert.Equal(t, "@every 1h", j.Schedule)
	j.Run("products.csv")
	assert.Equal(t, []string{"products.csv"}, got)

	assert.Panics(t, func() { Register("late", "@hourly", func(...string) {}) })
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("dupjob", "@hourly", func(...string) {})
	defer Unregister("dupjob")
	assert.Panics(t, func() { Register("dupjob", "@daily", func(...string) {}) })
}

func TestStartCron_RejectsBadSchedule(t *testing.T) {
	Register("badschedule", "every now and then", func(...string) {})
	defer Unregister("badschedule")

	_, err := StartCron()
	assert.ErrorContains(t, err, "register job badschedule")
}
