package jobs

import (
	"context"
	"errors"

	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
)

// SendUnpaidInvoiceReminders re-sends unpaid invoices to the linked
// booking's email address. Unlinked invoices have no address on file and
// are skipped.
func (jr *JobRunner) SendUnpaidInvoiceReminders() {
	jr.runWithRecovery("SendUnpaidInvoiceReminders", func() {
		ctx := context.Background()

		invoices, err := jr.services.Invoice.ListAll(ctx)
		if err != nil {
			logger.Error("Failed to load invoices", "error", err)
			return
		}

		sent := 0
		skipped := 0
		for i := range invoices {
			inv := &invoices[i]
			if inv.Paid {
				continue
			}
			if inv.BookingID == "" {
				skipped++
				continue
			}

			booking, err := jr.store.Bookings.GetByID(ctx, inv.BookingID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					logger.Error("Failed to load booking for reminder", "invoice_id", inv.ID, "error", err)
				}
				skipped++
				continue
			}

			if err := jr.services.Email.SendInvoice(ctx, inv, booking.Email); err != nil {
				logger.Error("Invoice reminder failed", "invoice_id", inv.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Unpaid invoice reminders processed", "sent", sent, "skipped", skipped)
	})
}
