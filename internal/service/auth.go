package service

import (
	"context"
	"strings"

	"TradeGate/internal/biz"
	"TradeGate/internal/conf"
	"TradeGate/pkg/security"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

func newWeakPasswordError(message string) error {
	return kerrors.New(400, "WEAK_PASSWORD", message)
}

func newInvalidCredentialsError() error {
	return kerrors.New(401, "INVALID_CREDENTIALS", "email or password is incorrect")
}

// AuthService handles login, registration and OTP requests. Login and OTP
// are rate limited per account with the limits from configuration.
type AuthService struct {
	limiter *biz.RateLimiterUseCase
	conf    *conf.RateLimit
	logger  *log.Helper
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(limiter *biz.RateLimiterUseCase, c *conf.RateLimit, logger log.Logger) *AuthService {
	return &AuthService{
		limiter: limiter,
		conf:    c,
		logger:  log.NewHelper(logger),
	}
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginReply is returned on a successful login.
type LoginReply struct {
	SessionToken string `json:"sessionToken"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	CompanyName string `json:"companyName"`
}

// RegisterReply is returned on a successful registration.
type RegisterReply struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	CompanyName string `json:"companyName"`
}

// OTPRequest is the body of POST /v1/auth/otp.
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPReply acknowledges that a one-time code was dispatched.
type OTPReply struct {
	Sent bool `json:"sent"`
}

// accountKey scopes a rate-limit action to one account. Emails are
// case-insensitive, so the key is lowercased to stop limit evasion via
// case variants.
func accountKey(action, email string) string {
	return action + ":" + strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials after passing the per-account login limiter.
// Rejected attempts surface as HTTP 429 RATE_LIMITED.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginReply, error) {
	key := accountKey(biz.ActionLoginAttempt, req.Email)
	if err := s.limiter.Check(ctx, key, int(s.conf.LoginLimit), s.conf.LoginWindow.AsDuration()); err != nil {
		return nil, err
	}

	// Password never reaches the log; the sanitizer masks it even if a
	// future field rename slips through.
	s.logger.Infow("msg", "login attempt", "email", req.Email)

	if !s.verifyCredentials(req.Email, req.Password) {
		return nil, newInvalidCredentialsError()
	}

	return &LoginReply{SessionToken: uuid.NewString()}, nil
}

// Register creates an account. The password must clear the strength rules;
// free-text display fields are HTML-escaped before they are stored or
// echoed back.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*RegisterReply, error) {
	check := security.ValidatePasswordStrength(req.Password)
	if !check.Valid {
		return nil, newWeakPasswordError(check.Message)
	}

	reply := &RegisterReply{
		UserID:      uuid.NewString(),
		DisplayName: security.SanitizeInput(req.DisplayName),
		CompanyName: security.SanitizeInput(req.CompanyName),
	}

	s.logger.Infow("msg", "account registered", "email", req.Email, "user_id", reply.UserID)
	return reply, nil
}

// RequestOTP dispatches a one-time code, limited per account.
func (s *AuthService) RequestOTP(ctx context.Context, req *OTPRequest) (*OTPReply, error) {
	key := accountKey(biz.ActionOTPRequest, req.Email)
	if err := s.limiter.Check(ctx, key, int(s.conf.OtpLimit), s.conf.OtpWindow.AsDuration()); err != nil {
		return nil, err
	}

	s.logger.Infow("msg", "otp dispatched", "email", req.Email)
	return &OTPReply{Sent: true}, nil
}

// verifyCredentials stands in for the identity provider lookup. Any
// non-empty pair is accepted so the surrounding flow is exercisable
// end to end.
// TODO: replace with the real identity provider call once its API ships.
func (s *AuthService) verifyCredentials(email, password string) bool {
	return strings.TrimSpace(email) != "" && password != ""
}
