package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/freshtrack/freshtrack/internal/config"
	"github.com/freshtrack/freshtrack/internal/domain"
	"github.com/freshtrack/freshtrack/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrUserNotFound          = errors.New("user not found")
)

// Mailer delivers outbound mail. Satisfied by mailer.SMTPMailer.
type Mailer interface {
	Send(to, subject, body string) error
}

type AuthService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	mailer      Mailer
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, productRepo repository.ProductRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		productRepo: productRepo,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	// Exact-match lookup; emails are case-sensitive as stored
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password so callers cannot probe
			// which emails are registered.
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Succeed silently so the response never reveals whether
			// the email is registered.
			return nil
		}
		return err
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return err
	}

	tokenHash := hashResetToken(rawToken)
	expiresAt := time.Now().Add(s.cfg.ResetTokenTTL)
	user.PasswordResetTokenHash = &tokenHash
	user.PasswordResetExpiresAt = &expiresAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), rawToken)
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\n"+
			"Follow this link to choose a new password:\r\n%s\r\n\r\n"+
			"The link expires in %d minutes. If you did not request a reset, ignore this message.",
		link, int(s.cfg.ResetTokenTTL.Minutes()),
	)

	return s.mailer.Send(user.Email, "Reset your password", body)
}

func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	tokenHash := hashResetToken(rawToken)

	user, err := s.userRepo.GetByResetTokenHash(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// New hash and cleared reset fields go out in one write, so the token
	// cannot be replayed.
	user.PasswordHash = string(hashedPassword)
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil

	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything they own.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.productRepo.DeleteByOwnerID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
