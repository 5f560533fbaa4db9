package jobs

import (
	"context"
	"time"

	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/service"
)

// MaterializeMonthlyDues creates the current month's dues record for every
// active member of every organization. Existing records are left untouched,
// so rerunning the job is safe.
func (jr *JobRunner) MaterializeMonthlyDues() {
	jr.runWithRecovery("MaterializeMonthlyDues", func() {
		ctx := context.Background()
		now := time.Now().UTC()
		month, year := int(now.Month()), now.Year()

		orgs, err := jr.store.OrganizationRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list organizations", "error", err)
			return
		}

		totalCreated := 0
		for _, org := range orgs {
			amount := org.DefaultDuesAmount
			if amount <= 0 {
				amount = jr.config.Dues.DefaultAmount
			}

			members, err := jr.store.MemberRepository.ListByOrg(ctx, org.ID, true)
			if err != nil {
				logger.Error("Failed to list members for org",
					"org_id", org.ID,
					"org_name", org.Name,
					"error", err)
				continue
			}

			created := 0
			for _, member := range members {
				_, err := jr.services.Dues.EnsureDues(ctx, service.SystemActor, org.ID, member.ID, month, year, amount)
				if err != nil {
					logger.Error("Failed to ensure dues for member",
						"org_id", org.ID,
						"member_id", member.ID,
						"error", err)
					continue
				}
				created++
			}

			logger.Info("Materialized dues for org",
				"org_id", org.ID,
				"org_name", org.Name,
				"month", month,
				"year", year,
				"members_processed", created)
			totalCreated += created
		}

		logger.Info("Monthly dues materialization completed",
			"month", month,
			"year", year,
			"total_members_processed", totalCreated)
	})
}

// SendMonthlyDuesReminders delivers a dues reminder to every owing member
// of every organization for the current month. A failing organization is
// logged and skipped so the remaining organizations still get their run.
func (jr *JobRunner) SendMonthlyDuesReminders() {
	jr.runWithRecovery("SendMonthlyDuesReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()
		month, year := int(now.Month()), now.Year()

		orgs, err := jr.store.OrganizationRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list organizations", "error", err)
			return
		}

		totalSent := 0
		for _, org := range orgs {
			run, err := jr.services.Reminders.SendMonthlyReminders(ctx, service.SystemActor, org.ID, month, year)
			if err != nil {
				logger.Error("Failed to send reminders for org",
					"org_id", org.ID,
					"org_name", org.Name,
					"error", err)
				continue
			}

			logger.Info("Reminders sent for org",
				"org_id", org.ID,
				"org_name", org.Name,
				"attempted", run.Attempted,
				"sent", run.Sent)
			totalSent += run.Sent
		}

		logger.Info("Monthly reminder run completed",
			"month", month,
			"year", year,
			"total_sent", totalSent)
	})
}
