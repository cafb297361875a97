package service

import (
	"context"
	"fmt"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/repository"
)

type ledgerService struct {
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(userRepo repository.UserRepository, ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{userRepo: userRepo, ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID, storeID string) (domain.Money, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load user: %w", err)
	}
	if !user.OwnsStore(storeID) {
		return 0, domain.ErrForbidden
	}
	return s.ledgerRepo.GetBalance(ctx, storeID)
}
