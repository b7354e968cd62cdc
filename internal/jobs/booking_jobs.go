package jobs

import (
	"context"
	"time"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
)

// SendPickupReminders emails clients with a confirmed pickup scheduled for
// today, so nobody is left waiting at the jetty.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()

		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end := start.Add(24*time.Hour - time.Millisecond)

		bookings, err := jr.store.Bookings.ListByPickupRange(ctx, start, end)
		if err != nil {
			logger.Error("Failed to load today's pickups", "error", err)
			return
		}

		count := 0
		for i := range bookings {
			booking := &bookings[i]
			if booking.Status != domain.BookingStatusConfirmed {
				continue
			}
			if err := jr.services.Email.SendBookingStatusUpdate(ctx, booking); err != nil {
				logger.Error("Pickup reminder failed", "booking_id", booking.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Pickup reminders sent", "count", count, "date", start.Format("2006-01-02"))
	})
}
