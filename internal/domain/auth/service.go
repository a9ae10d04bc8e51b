package auth

import "context"

// Service handles login and admin OTP issuance. Token semantics are
// owned by the jwt package; this service only decides who gets one.
type Service interface {
	// Login verifies credentials (and, for admins, a one-time code) and
	// issues an access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// SendAdminOTP generates and caches a single-use code for an admin
	// login. Delivery is out of scope; the code is logged for the demo
	// transport.
	SendAdminOTP(ctx context.Context, req SendOTPRequest) error
}
