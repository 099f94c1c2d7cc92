package auth

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tajhans/camber-scouting/internal/api/apiutil"
	"github.com/tajhans/camber-scouting/internal/config"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
	"github.com/tajhans/camber-scouting/internal/email"
	"github.com/tajhans/camber-scouting/internal/ratelimit"
)

const minPasswordLength = 8

var (
	queries   *dbgen.Queries
	appConfig *config.Config
	sender    email.Sender
	limiter   *ratelimit.Limiter
)

// InitHandlers must be called during server startup before handling
// requests. A nil mail sender disables verification emails (codes are
// still recorded, useful in development).
func InitHandlers(q *dbgen.Queries, cfg *config.Config, mail email.Sender) {
	queries = q
	appConfig = cfg
	sender = mail
	limiter = ratelimit.New(ratelimit.DefaultConfig())
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendRequest struct {
	Email string `json:"email"`
}

// POST /api/v1/auth/sign-up
func HandleSignUp(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req signUpRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" || req.Password == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		apiutil.WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := queries.CreateUser(r.Context(), dbgen.CreateUserParams{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		logger.Error().Err(err).Str("email", ratelimit.SanitizeEmail(req.Email)).Msg("Failed to create user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := issueVerificationCode(r, user.Email); err != nil {
		// Account creation succeeded; verification can be retried later.
		logger.Warn().Err(err).Msg("Failed to issue verification code")
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// POST /api/v1/auth/sign-in
func HandleSignIn(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req signInRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ip := ratelimit.GetClientIP(r, false)
	if res := limiter.CheckAttempt(req.Email, ip); !res.Allowed {
		ratelimit.LogRateLimitExceeded("sign_in", req.Email, ip, res.Reason)
		apiutil.WriteError(w, http.StatusTooManyRequests, "Too many attempts, try again later")
		return
	}

	user, err := queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error().Err(err).Msg("Failed to look up user")
			apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		limiter.RecordAttempt(req.Email, ip)
		apiutil.WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	if !VerifyPassword(user.PasswordHash, req.Password) {
		if lockedOut := limiter.RecordAttempt(req.Email, ip); lockedOut {
			logger.Warn().Str("email", ratelimit.SanitizeEmail(req.Email)).Msg("Sign-in lockout triggered")
		}
		apiutil.WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	limiter.ResetAttempts(req.Email)

	if err := CreateSession(w, r, user.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Sign in successful"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// POST /api/v1/auth/sign-out
func HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Signed out"}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}

// POST /api/v1/auth/verify
func HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req verifyRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ip := ratelimit.GetClientIP(r, false)
	if res := limiter.CheckAttempt(req.Email, ip); !res.Allowed {
		ratelimit.LogRateLimitExceeded("verify", req.Email, ip, res.Reason)
		apiutil.WriteError(w, http.StatusTooManyRequests, "Too many attempts, try again later")
		return
	}

	_, err := queries.GetVerification(r.Context(), dbgen.GetVerificationParams{
		Identifier: req.Email,
		Value:      req.Code,
	})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error().Err(err).Msg("Failed to look up verification")
			apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		limiter.RecordAttempt(req.Email, ip)
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid or expired code")
		return
	}

	if _, err := queries.MarkUserEmailVerified(r.Context(), req.Email); err != nil {
		logger.Error().Err(err).Msg("Failed to mark email verified")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := queries.DeleteVerificationsByIdentifier(r.Context(), req.Email); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear verification codes")
	}
	limiter.ResetAttempts(req.Email)

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Email verified"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// POST /api/v1/auth/resend-code
func HandleResendCode(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req resendRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// Respond identically whether or not the account exists.
	if _, err := queries.GetUserByEmail(r.Context(), req.Email); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error().Err(err).Msg("Failed to look up user")
			apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	} else if err := issueVerificationCode(r, req.Email); err != nil {
		if errors.Is(err, errSendLimited) {
			apiutil.WriteError(w, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		logger.Error().Err(err).Msg("Failed to issue verification code")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Verification code sent"}); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

var errSendLimited = errors.New("verification send rate limited")

func verificationTTL() time.Duration {
	if appConfig == nil {
		return 15 * time.Minute
	}
	return appConfig.Auth.VerificationTTL
}

// issueVerificationCode stores a fresh code for the email and hands it
// to the mail sender. Older codes for the same address are removed
// first so only the latest one verifies.
func issueVerificationCode(r *http.Request, address string) error {
	ip := ratelimit.GetClientIP(r, false)
	if res := limiter.CheckCodeSend(address, ip); !res.Allowed {
		ratelimit.LogRateLimitExceeded("code_send", address, ip, res.Reason)
		return errSendLimited
	}

	code, err := newVerificationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	ctx := r.Context()
	if err := queries.DeleteVerificationsByIdentifier(ctx, address); err != nil {
		return fmt.Errorf("clear old codes: %w", err)
	}

	ttl := verificationTTL()
	_, err = queries.CreateVerification(ctx, dbgen.CreateVerificationParams{
		ID:         uuid.New().String(),
		Identifier: address,
		Value:      code,
		ExpiresAt:  time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	limiter.RecordCodeSend(address, ip)
	email.SendVerificationCode(ctx, sender, address, code, ttl)
	return nil
}

// newVerificationCode returns a random six digit code.
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
