package main

import (
	"context"
	"log"
	"time"

	"ismaalAdmin/internal/services"
)

const defaultBoardCleanerInterval = time.Minute

// startBoardCleaner drops submission boards of admins that have been idle
// longer than idleTTL.
func startBoardCleaner(ctx context.Context, svc *services.SubmissionService, interval, idleTTL time.Duration, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}
	if idleTTL <= 0 {
		if errorLog != nil {
			errorLog.Printf("board cleaner: idle ttl %s is not positive, cleaner disabled", idleTTL)
		}
		return
	}
	if interval <= 0 {
		interval = defaultBoardCleanerInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run := func() {
			if n := svc.ReapIdle(idleTTL); n > 0 && infoLog != nil {
				infoLog.Printf("board cleaner: dropped %d idle submission boards", n)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
