package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankauth/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const logoutDeniedMsg = "Can't log out when you aren't logged in."

type signupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type movementView struct {
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) wakeup(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server started"})
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, validationErrors(err))
		return
	}

	ctx := c.Request.Context()
	s.logger.Info(ctx, "Signup request")

	token, err := s.auth.SignUp(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered. Use other email."})
			return
		}
		s.logger.Error(ctx, "signup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.logger.Info(ctx, "Signed up", "email", req.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"user":    gin.H{"token": token},
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, validationErrors(err))
		return
	}

	ctx := c.Request.Context()

	token, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		// one response for unknown email and wrong password
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email and/or password"})
			return
		}
		s.logger.Error(ctx, "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully logged in.",
		"user":    gin.H{"token": token},
	})
}

func (s *Server) logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": logoutDeniedMsg})
		return
	}

	ctx := c.Request.Context()

	email, err := s.auth.Logout(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": logoutDeniedMsg})
			return
		}
		s.logger.Error(ctx, "logout failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully Logged Out",
		"user":    email,
	})
}

func (s *Server) account(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	acc, err := s.accounts.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		s.logger.Error(ctx, "account read failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	movements := make([]movementView, 0, len(acc.Movements))
	for _, m := range acc.Movements {
		movements = append(movements, movementView{Amount: m.Amount, CreatedAt: m.CreatedAt})
	}

	c.JSON(http.StatusOK, gin.H{
		"name":      acc.Name,
		"email":     acc.Email,
		"balance":   acc.Balance,
		"movements": movements,
	})
}

// validationErrors maps binding failures to one message per field.
func validationErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"error": "malformed request body"}
	}

	out := gin.H{}
	for _, fe := range verrs {
		out[fieldName(fe.Field())] = fieldMessage(fe)
	}
	return out
}

func fieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fieldName(fe.Field()) + " is required"
	case "email":
		return "Please enter a valid email"
	case "min":
		return "Password must be at least " + fe.Param() + " characters long"
	case "eqfield":
		return "Passwords have to match"
	default:
		return "Invalid value"
	}
}
