package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/stafftrack/hrms-backend-go/internal/domain/auth"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	identityRepo identity.Repository
	jwtService   jwt.Service
	otpCache     *otp.Cache
}

func NewAuthService(identityRepo identity.Repository, jwtService jwt.Service, otpCache *otp.Cache) auth.Service {
	return &AuthServiceImpl{
		identityRepo: identityRepo,
		jwtService:   jwtService,
		otpCache:     otpCache,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	ident, err := s.identityRepo.GetByLogin(ctx, req.Login)
	if err != nil {
		// Same error for unknown logins and bad passwords.
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !ident.IsActive {
		return auth.LoginResponse{}, identity.ErrIdentityInactive
	}
	if ident.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*ident.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	// Admin logins carry a second factor: a single-use code requested
	// beforehand via SendAdminOTP.
	if ident.Role == identity.RoleAdmin {
		if req.OTP == nil || *req.OTP == "" {
			return auth.LoginResponse{}, auth.ErrOTPRequired
		}
		if !s.otpCache.VerifyAndConsume(ident.ID, *req.OTP) {
			return auth.LoginResponse{}, auth.ErrInvalidOTP
		}
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(ident.ID, ident.Name, ident.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User: auth.User{
			ID:   ident.ID,
			Name: ident.Name,
			Role: string(ident.Role),
		},
	}, nil
}

// SendAdminOTP implements auth.Service.
func (s *AuthServiceImpl) SendAdminOTP(ctx context.Context, req auth.SendOTPRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	ident, err := s.identityRepo.GetByLogin(ctx, req.Login)
	if err != nil {
		// Do not reveal whether the login exists.
		return nil
	}
	if ident.Role != identity.RoleAdmin || !ident.IsActive {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	s.otpCache.Set(ident.ID, code)

	// Stand-in for a mail/SMS transport.
	slog.InfoContext(ctx, "admin login code issued",
		slog.String("user_id", ident.ID),
		slog.String("code", code),
	)

	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
