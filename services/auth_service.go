package services

import (
	"context"
	"log"
	"time"

	"tech-shop/models"
	"tech-shop/utils"
)

// ResetCodeTTL is how long a password reset code stays valid.
const ResetCodeTTL = 10 * time.Minute

type AuthUserStore interface {
	Create(ctx context.Context, user *models.User, actor string) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int, hashedPassword, actor string) error
}

type ResetTokenStore interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	Find(ctx context.Context, userID int, token string) (*models.PasswordResetToken, error)
	Delete(ctx context.Context, id int) error
}

type AuthService struct {
	users  AuthUserStore
	tokens ResetTokenStore
	mailer Mailer
}

func NewAuthService(users AuthUserStore, tokens ResetTokenStore, mailer Mailer) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !isNoRows(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	gender := req.Gender
	if gender == "" {
		gender = models.GenderOther
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
		Gender:   gender,
		Phone:    req.Phone,
	}

	// Self-registration: the new user is their own acting principal.
	if err := s.users.Create(ctx, user, req.Email); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) GetAccount(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int, req models.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	valid, err := utils.VerifyPassword(user.Password, req.CurrentPassword)
	if err != nil || !valid {
		return ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, hashedPassword, user.Email)
}

// RequestPasswordReset issues a reset code and mails it. The code replaces
// any outstanding one for the user and expires after ResetCodeTTL.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	code := GenerateResetCode()
	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     code,
		ExpiresAt: time.Now().Add(ResetCodeTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return err
	}

	if s.mailer != nil {
		go func(to, name, code string) {
			if err := s.mailer.SendResetCodeEmail(to, name, code); err != nil {
				log.Printf("Failed to send reset code email to %s: %v", to, err)
			}
		}(user.Email, user.Name, code)
	}

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNoRows(err) {
			return ErrInvalidResetCode
		}
		return err
	}

	token, err := s.tokens.Find(ctx, user.ID, req.Code)
	if err != nil {
		if isNoRows(err) {
			return ErrInvalidResetCode
		}
		return err
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.tokens.Delete(ctx, token.ID)
		return ErrInvalidResetCode
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashedPassword, user.Email); err != nil {
		return err
	}

	return s.tokens.Delete(ctx, token.ID)
}
