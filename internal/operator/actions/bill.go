package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/notify"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

// PayBill records a payment. A one-off bill is marked paid; a recurring
// bill moves to its next due date and stays unpaid.
type PayBill struct {
	ID uuid.UUID

	Bill *sqlconfig.Bill
}

func (p *PayBill) Perform(ctx context.Context, writer *storage.Writer) error {
	bill, err := writer.Bills.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}

	if bill.Cadence == sqlconfig.CadenceOnce {
		if bill.Paid {
			return invalid("bill %q is already paid", bill.Name)
		}
		bill.Paid = true
	} else {
		bill.NextDueDate = NextDueDate(bill.NextDueDate, bill.Cadence)
		bill.Paid = false
	}

	if err := writer.Bills.Update(ctx, bill); err != nil {
		return err
	}
	p.Bill = bill
	return nil
}

func (p *PayBill) Touches() []notify.Kind { return []notify.Kind{notify.KindBills} }

// NextDueDate advances due by one cadence step. Unknown cadences and
// one-off bills keep their date.
func NextDueDate(due time.Time, cadence sqlconfig.Cadence) time.Time {
	switch cadence {
	case sqlconfig.CadenceWeekly:
		return due.AddDate(0, 0, 7)
	case sqlconfig.CadenceMonthly:
		return due.AddDate(0, 1, 0)
	case sqlconfig.CadenceYearly:
		return due.AddDate(1, 0, 0)
	default:
		return due
	}
}
