// Package httpapi exposes the authentication service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bankauth/internal/logging"
	"github.com/dmitrijs2005/bankauth/internal/server/auth"
	"github.com/dmitrijs2005/bankauth/internal/server/services"
	"github.com/gin-gonic/gin"
)

// AuthProvider is the slice of AuthService the handlers need.
type AuthProvider interface {
	SignUp(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) (string, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// AccountProvider serves the account view for authenticated users.
type AccountProvider interface {
	Get(ctx context.Context, userID string) (*services.Account, error)
}

type Server struct {
	address  string
	logger   logging.Logger
	auth     AuthProvider
	accounts AccountProvider
}

func NewServer(address string, l logging.Logger, as AuthProvider, acc AccountProvider) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		auth:     as,
		accounts: acc,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/wakeup", s.wakeup)
	r.POST("/signup", s.signup)
	r.POST("/login", s.login)
	r.POST("/logout", s.logout)
	r.GET("/account", s.requireAuth(), s.account)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
