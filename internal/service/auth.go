package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/config"
	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/logger"
	"github.com/shortlist-dev/shortlister/internal/otp"
)

type AuthService interface {
	SignupInit(name, email, password string) (string, error)
	SignupVerify(email, otpCode string) (string, error)
	Login(email, password string) (LoginResult, error)
}

// LoginResult carries the minted token plus the minimal profile data the
// login response exposes.
type LoginResult struct {
	Token  string
	Name   string
	UserId domain.UserId
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByEmail(email string) (domain.User, error)
	// ForEachPasswordHash streams every stored hash to fn; fn returning a
	// non-nil error stops the scan and is returned as-is.
	ForEachPasswordHash(fn func(hash string) error) error
	SavePendingSignup(p domain.PendingSignup) error
	PendingSignup(email, otpCode string) (domain.PendingSignup, error)
	// PromotePendingSignup creates the account and deletes the pending
	// record in one transaction.
	PromotePendingSignup(p domain.PendingSignup) (domain.UserId, error)
}

type EmailSender interface {
	Send(recipientEmail, subject, body string) error
	IsCorrect(email string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage AuthStorage
	email   EmailSender
	jwt     Jwt
	cfg     *config.Config
}

func NewAuth(storage AuthStorage, email EmailSender, jwt Jwt, cfg *config.Config) *Auth {
	return &Auth{
		storage: storage,
		email:   email,
		jwt:     jwt,
		cfg:     cfg,
	}
}

var (
	digitRegex  = regexp.MustCompile(`\d`)
	symbolRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// isStrongPassword enforces the password policy: at least 8 characters,
// one digit and one symbol from the defined punctuation set.
func isStrongPassword(password string) bool {
	return len(password) >= 8 &&
		digitRegex.MatchString(password) &&
		symbolRegex.MatchString(password)
}

// errPasswordReused is a sentinel for stopping the reuse scan early.
var errPasswordReused = apperr.New(apperr.Conflict, "Password already in use. Please choose a different one.")

// SignupInit validates the signup, stores a pending record and emails the
// OTP. The record is written before the email is dispatched, so a relay
// failure leaves a re-initiable pending row rather than orphaning the code.
func (a *Auth) SignupInit(name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if err := a.email.IsCorrect(email); err != nil {
		return "", err
	}
	if !strings.HasSuffix(email, a.cfg.Public.AllowedEmailDomain) {
		return "", apperr.New(apperr.Forbidden, fmt.Sprintf("Only %s addresses are allowed.", a.cfg.Public.AllowedEmailDomain))
	}
	if !isStrongPassword(password) {
		return "", apperr.New(apperr.WeakCredential, "Password must be at least 8 characters, include a digit and a special character.")
	}

	_, err := a.storage.UserByEmail(email)
	if err == nil {
		return "", apperr.New(apperr.Conflict, "User already exists.")
	}
	if !apperr.Is(err, apperr.NotFound) {
		return "", err
	}

	// Anti-reuse policy: the new plaintext must not verify against any
	// stored hash. A salted hash cannot be indexed, so this is an O(n)
	// scan over all accounts and tolerates concurrent inserts.
	err = a.storage.ForEachPasswordHash(func(hash string) error {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
			return errPasswordReused
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	code, err := otp.Generate(a.cfg.OtpLength())
	if err != nil {
		logger.Log.Error("failed to generate otp", "error", err)
		return "", err
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", err
	}

	err = a.storage.SavePendingSignup(domain.PendingSignup{
		Email:    email,
		Name:     name,
		PassHash: string(passHash),
		Otp:      code,
		Expires:  time.Now().UTC().Add(a.cfg.OtpTTL()),
	})
	if err != nil {
		return "", err
	}

	emailBody := fmt.Sprintf(`Hello,

Your OTP to verify your email is:

%s

This OTP will expire in %.0f minutes.

If you did not request this, please ignore this email.
`, code, a.cfg.OtpTTL().Minutes())

	if err := a.email.Send(email, "Verify your email - Resume Shortlister", emailBody); err != nil {
		return "", err
	}

	return fmt.Sprintf("OTP sent to %s. Please verify to complete signup.", email), nil
}

// SignupVerify promotes a pending signup into an account. A missing
// record, a wrong code and an expired code are all reported identically
// so the response reveals nothing about which part was wrong.
func (a *Auth) SignupVerify(email, otpCode string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	invalid := apperr.New(apperr.InvalidCredential, "Invalid OTP or email.")

	pending, err := a.storage.PendingSignup(email, otpCode)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return "", invalid
		}
		return "", err
	}
	if pending.Expires.Before(time.Now().UTC()) {
		return "", invalid
	}

	if _, err := a.storage.PromotePendingSignup(pending); err != nil {
		return "", err
	}

	return "Signup verified successfully. You can now login.", nil
}

// Login checks credentials and mints a session token. A missing account
// and a wrong password return the same error to avoid user enumeration.
func (a *Auth) Login(email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	invalid := apperr.New(apperr.InvalidCredential, "Invalid credentials.")

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return LoginResult{}, invalid
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return LoginResult{}, invalid
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Name: user.Name, UserId: user.Id}, nil
}
