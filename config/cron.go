package config

import "os"

// ImportCron configures the scheduled import of a drop file.
type ImportCron struct {
	Schedule string
	File     string
}

// LoadImportCron reads IMPORT_CRON_SCHEDULE and IMPORT_CRON_FILE. The job
// is not scheduled when no file is set.
func LoadImportCron() ImportCron {
	c := ImportCron{
		Schedule: os.Getenv("IMPORT_CRON_SCHEDULE"),
		File:     os.Getenv("IMPORT_CRON_FILE"),
	}
	if c.Schedule == "" {
		c.Schedule = "*/15 * * * *"
	}
	return c
}
