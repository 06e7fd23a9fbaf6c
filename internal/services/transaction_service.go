package services

import (
	"context"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

// TransactionService serves the legacy single-product purchase records. Every
// read joins the current user and product.
type TransactionService struct {
	Txs   repos.TransactionStore
	Users repos.UserStore
	Prods repos.ProductStore
}

func NewTransactionService(txs repos.TransactionStore, users repos.UserStore, prods repos.ProductStore) *TransactionService {
	return &TransactionService{Txs: txs, Users: users, Prods: prods}
}

func (s *TransactionService) List(ctx context.Context, userID int64) ([]domain.EnrichedTransaction, error) {
	txs, err := s.Txs.ListTransactions(ctx, repos.UserFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	newestFirst(txs,
		func(t domain.Transaction) time.Time { return t.TransactionDate },
		func(t domain.Transaction) int64 { return t.ID })

	l, err := loadLookup(ctx, s.Users, s.Prods)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EnrichedTransaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, l.enrichTransaction(t))
	}
	return out, nil
}

// Create records a purchase with status "ordered".
func (s *TransactionService) Create(ctx context.Context, userID, productID int64, quantity int) (domain.EnrichedTransaction, error) {
	t, err := s.Txs.CreateTransaction(ctx, domain.Transaction{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    domain.StatusOrdered,
	})
	if err != nil {
		return domain.EnrichedTransaction{}, err
	}
	return s.enrichOne(ctx, t)
}

func (s *TransactionService) UpdateStatus(ctx context.Context, id int64, status string) (domain.EnrichedTransaction, error) {
	if !domain.ValidStatus(status) {
		return domain.EnrichedTransaction{}, ErrInvalidStatus
	}
	t, err := s.Txs.UpdateTransactionStatus(ctx, id, status)
	if err != nil {
		return domain.EnrichedTransaction{}, err
	}
	return s.enrichOne(ctx, t)
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	return s.Txs.DeleteTransaction(ctx, id)
}

func (s *TransactionService) enrichOne(ctx context.Context, t domain.Transaction) (domain.EnrichedTransaction, error) {
	l, err := loadLookup(ctx, s.Users, s.Prods)
	if err != nil {
		return domain.EnrichedTransaction{}, err
	}
	return l.enrichTransaction(t), nil
}
