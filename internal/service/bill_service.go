package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-desk/internal/operator/actions"
	"github.com/carson-networks/budget-desk/internal/storage"
	"github.com/carson-networks/budget-desk/internal/storage/sqlconfig"
)

type BillService struct {
	storage  *storage.Storage
	operator Processor
}

func NewBillService(store *storage.Storage, op Processor) *BillService {
	return &BillService{storage: store, operator: op}
}

func (s *BillService) CreateBill(ctx context.Context, bill *sqlconfig.Bill) (uuid.UUID, error) {
	action := actions.CreateBill(bill)
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

func (s *BillService) UpdateBill(ctx context.Context, bill *sqlconfig.Bill) error {
	return s.operator.Process(ctx, actions.UpdateBill(bill))
}

func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, actions.DeleteBill(id))
}

func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*sqlconfig.Bill, error) {
	return s.storage.Bills.FindByID(ctx, id)
}

// ListBills returns bills ordered by next due date.
func (s *BillService) ListBills(ctx context.Context) ([]*sqlconfig.Bill, error) {
	return s.storage.Bills.List(ctx)
}

// PayBill records a payment and returns the bill as stored afterwards.
func (s *BillService) PayBill(ctx context.Context, id uuid.UUID) (*sqlconfig.Bill, error) {
	action := &actions.PayBill{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Bill, nil
}
