package services

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// StartExportScheduler rebuilds the spreadsheet on the given cron spec
// (e.g. "@hourly" or "0 * * * *"), repairing an export whose rebuild after a
// customer change failed. Stop the returned scheduler on shutdown.
func StartExportScheduler(spec string, export *ExportService) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() {
		export.RebuildQuietly(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid export schedule %q: %w", spec, err)
	}

	c.Start()
	log.Printf("[EXPORT] scheduled rebuild started (%s)", spec)
	return c, nil
}
