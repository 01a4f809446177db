package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankauth/internal/common"
	"github.com/dmitrijs2005/bankauth/internal/dbx"
	"github.com/dmitrijs2005/bankauth/internal/server/models"
	movementsrepo "github.com/dmitrijs2005/bankauth/internal/server/repositories/movements"
	sessionsrepo "github.com/dmitrijs2005/bankauth/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/bankauth/internal/server/repositories/users"
)

// In-memory repositories give the full signup/login/logout flow a real
// uniqueness check without a database.

type memUsers struct {
	byEmail map[string]*models.User
	seq     int
}

func newMemUsers() *memUsers { return &memUsers{byEmail: map[string]*models.User{}} }

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m.seq++
	u.ID = "u-" + strconv.Itoa(m.seq)
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memSessions struct {
	rows map[string]*models.Session
}

func newMemSessions() *memSessions { return &memSessions{rows: map[string]*models.Session{}} }

func (m *memSessions) Create(ctx context.Context, id string, userID string, validity time.Duration) error {
	m.rows[id] = &models.Session{ID: id, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (m *memSessions) Find(ctx context.Context, id string) (*models.Session, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

type memRepoManager struct {
	u *memUsers
	s *memSessions
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *memRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository    { return m.s }
func (m *memRepoManager) Movements(db dbx.DBTX) movementsrepo.Repository  { return nil }

func TestAuthFlow_Scenario(t *testing.T) {
	db, mock := newSQLMockDB(t)
	// only the first signup reaches the transactional insert
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &memRepoManager{u: newMemUsers(), s: newMemSessions()}
	s := newAuthService(t, db, rm)
	ctx := context.Background()

	// signup succeeds once
	token, err := s.SignUp(ctx, "A", "a@x.com", "Secret123!")
	if err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	if token == "" {
		t.Fatalf("signup must return a token")
	}

	// identical signup yields a conflict
	if _, err := s.SignUp(ctx, "A", "a@x.com", "Secret123!"); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("second signup: want ErrorAlreadyExists, got %v", err)
	}

	// login with correct credentials
	loginToken, err := s.Login(ctx, "a@x.com", "Secret123!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if loginToken == "" {
		t.Fatalf("login must return a token")
	}

	// login with a wrong password never yields a token
	wrongToken, err := s.Login(ctx, "a@x.com", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: want ErrorUnauthorized, got %v", err)
	}
	if wrongToken != "" {
		t.Fatalf("wrong password must not yield a token")
	}

	// the login token authenticates while its session lives
	if _, err := s.Authenticate(ctx, loginToken); err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}

	// logout revokes it
	email, err := s.Logout(ctx, loginToken)
	if err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if email != "a@x.com" {
		t.Fatalf("unexpected email: %q", email)
	}

	// and afterwards the token no longer works
	if _, err := s.Authenticate(ctx, loginToken); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("after logout: want ErrorUnauthorized, got %v", err)
	}
	if _, err := s.Logout(ctx, loginToken); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("double logout: want ErrorUnauthorized, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
