package jobs

import (
	"context"
	"time"

	"school-lending-backend/internal/logger"
	"school-lending-backend/internal/utils"
)

// ApplyOverdueFines upserts provisional late fines for every borrowed loan
// past its deadline. Reruns are safe; rows already in the payment flow are
// left alone.
func (jr *JobRunner) ApplyOverdueFines() {
	jr.runWithRecovery("ApplyOverdueFines", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		applied, err := jr.services.Fine.ApplyOverdueFines(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to apply overdue fines", "error", err)
			return
		}

		logger.Info("Applied overdue fines", "count", applied)
	})
}

// SendOverdueReminders emails every borrower holding an overdue loan with the
// current estimated late fee.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		today := time.Now().Format("2006-01-02")
		loans, err := jr.store.LoanRepository.ListOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		schedule := utils.FineSchedule{
			PerDayRupiah:     jr.config.Fines.PerDayRupiah,
			FlatDamageRupiah: jr.config.Fines.FlatDamageRupiah,
			FlatLossRupiah:   jr.config.Fines.FlatLossRupiah,
		}
		now, _ := utils.ParseDate(today)

		sent := 0
		for _, loan := range loans {
			if loan.Deadline == nil {
				continue
			}
			deadline, err := utils.ParseDate(*loan.Deadline)
			if err != nil {
				logger.Error("Skipping loan with malformed deadline", "loan_id", loan.ID, "error", err)
				continue
			}

			borrower, err := jr.store.UserRepository.GetByID(ctx, loan.BorrowerID)
			if err != nil {
				logger.Error("Failed to load borrower for reminder", "loan_id", loan.ID, "user_id", loan.BorrowerID, "error", err)
				continue
			}
			if borrower.Email == "" {
				continue
			}

			daysLate := utils.DaysLate(deadline, now)
			estimated := int64(daysLate) * schedule.PerDayRupiah

			err = jr.services.Email.SendOverdueReminder(ctx, borrower.Email, borrower.Name, loan.ItemName, *loan.Deadline, daysLate, estimated)
			if err != nil {
				logger.Error("Failed to send overdue reminder", "loan_id", loan.ID, "email", borrower.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "count", sent, "overdue_loans", len(loans))
	})
}
