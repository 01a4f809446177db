package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankauth/internal/common"
	"github.com/dmitrijs2005/bankauth/internal/server/models"
)

func TestAccountGet_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)

	now := time.Now()
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getByIDOut: &models.User{ID: "u-1", Name: "Alice", Email: "a@x.com", Balance: 150}},
		m: &fakeMovementsRepo{listOut: []*models.Movement{
			{ID: "m-1", UserID: "u-1", Amount: 250, CreatedAt: now.Add(-2 * time.Hour)},
			{ID: "m-2", UserID: "u-1", Amount: -100, CreatedAt: now.Add(-1 * time.Hour)},
		}},
	}
	s := NewAccountService(db, rm)

	acc, err := s.Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if acc.Email != "a@x.com" || acc.Balance != 150 {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if len(acc.Movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(acc.Movements))
	}
}

func TestAccountGet_UserMissing(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getByIDErr: common.ErrorNotFound},
		m: &fakeMovementsRepo{},
	}
	s := NewAccountService(db, rm)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestAccountGet_MovementsFailureIsInternal(t *testing.T) {
	db, _ := newSQLMockDB(t)

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getByIDOut: &models.User{ID: "u-1"}},
		m: &fakeMovementsRepo{listErr: errors.New("db down")},
	}
	s := NewAccountService(db, rm)

	_, err := s.Get(context.Background(), "u-1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
}
