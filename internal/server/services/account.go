package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/bankauth/internal/common"
	"github.com/dmitrijs2005/bankauth/internal/server/models"
	"github.com/dmitrijs2005/bankauth/internal/server/repositories/repomanager"
)

// Account is the view served to an authenticated user.
type Account struct {
	Name      string
	Email     string
	Balance   int64
	Movements []*models.Movement
}

// AccountService reads the account view (balance and movement history).
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// Get returns the account view for the given user ID.
func (s *AccountService) Get(ctx context.Context, userID string) (*Account, error) {
	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	movementRepo := s.repomanager.Movements(s.db)
	movements, err := movementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Account{
		Name:      user.Name,
		Email:     user.Email,
		Balance:   user.Balance,
		Movements: movements,
	}, nil
}
