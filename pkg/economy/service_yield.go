package economy

import (
	"context"
	"fmt"
)

// SweepReport summarizes one yield or expiry run.
type SweepReport struct {
	AccountsVisited int
	AccountsPaid    int
	ItemsExpired    int
	TotalCredited   Amount
}

// RunYieldSweep credits each account's passive income for one UTC day.
// The per-account day bucket is claimed atomically before crediting, so a
// re-run for the same day credits nothing. A failed credit releases the
// claim so the retried sweep still pays that account.
func (service *Service) RunYieldSweep(ctx context.Context, day string) (SweepReport, error) {
	report, operationError := service.runYieldSweep(ctx, day)
	service.logOperation(ctx, OperationLog{
		Operation: operationYieldSweep,
		Amount:    report.TotalCredited,
		Error:     operationError,
	})
	return report, operationError
}

func (service *Service) runYieldSweep(ctx context.Context, day string) (SweepReport, error) {
	report := SweepReport{}
	accounts, err := service.store.ListAccounts(ctx)
	if err != nil {
		return report, err
	}
	for _, account := range accounts {
		report.AccountsVisited++
		total := service.dailyYield(account)
		if total == 0 {
			continue
		}
		claimed, err := service.store.ClaimYieldDay(ctx, account.UserID, day)
		if err != nil {
			return report, err
		}
		if !claimed {
			continue
		}
		if err := service.store.Credit(ctx, account.UserID, total); err != nil {
			// Release the claim so a retried sweep still pays this day.
			if revertErr := service.store.ReleaseYieldDay(ctx, account.UserID, day); revertErr != nil {
				return report, WrapError(operationYieldSweep, "yield", "revert_failed", revertErr)
			}
			return report, err
		}
		report.AccountsPaid++
		report.TotalCredited += total
		service.audit(ctx, account.UserID.String(), auditActionYieldCredited, day, total.TON())
		service.appendEvent(ctx, eventYieldCredited, account.UserID,
			fmt.Sprintf("Tus criaturas generaron %s TON hoy.", total.TON()))
	}
	return report, nil
}

func (service *Service) dailyYield(account Account) Amount {
	var total Amount
	for _, descriptor := range service.catalog.YieldBearing() {
		count := account.ItemCount(descriptor.Kind)
		if count > 0 {
			total += Amount(descriptor.DailyYield.Int64() * count)
		}
	}
	return total
}

// RunExpirySweep zeroes out time-limited items whose lifetime elapsed
// since the account registered. Already-expired items are a no-op.
func (service *Service) RunExpirySweep(ctx context.Context, nowUnixUTC int64) (SweepReport, error) {
	report, operationError := service.runExpirySweep(ctx, nowUnixUTC)
	service.logOperation(ctx, OperationLog{
		Operation: operationExpirySweep,
		Error:     operationError,
	})
	return report, operationError
}

func (service *Service) runExpirySweep(ctx context.Context, nowUnixUTC int64) (SweepReport, error) {
	report := SweepReport{}
	accounts, err := service.store.ListAccounts(ctx)
	if err != nil {
		return report, err
	}
	expiring := service.catalog.Expiring()
	for _, account := range accounts {
		report.AccountsVisited++
		elapsedDays := (nowUnixUTC - account.RegisteredUnixUTC) / secondsPerDay
		for _, descriptor := range expiring {
			if elapsedDays < int64(descriptor.LifetimeDays) {
				continue
			}
			if account.ItemCount(descriptor.Kind) == 0 {
				continue
			}
			cleared, err := service.store.ClearItem(ctx, account.UserID, descriptor.Kind)
			if err != nil {
				return report, err
			}
			if !cleared {
				continue
			}
			report.ItemsExpired++
			service.audit(ctx, account.UserID.String(), auditActionItemExpired, descriptor.Kind.String(),
				fmt.Sprintf("elapsed_days=%d lifetime=%d", elapsedDays, descriptor.LifetimeDays))
			service.appendEvent(ctx, eventItemExpired, account.UserID,
				fmt.Sprintf("Tu %s completó su ciclo vital y regresó al plano mítico.", descriptor.Name))
		}
	}
	return report, nil
}
