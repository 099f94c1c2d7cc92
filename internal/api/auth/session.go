package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tajhans/camber-scouting/internal/api/authz"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
	"github.com/tajhans/camber-scouting/internal/ratelimit"
)

const (
	sessionCookieName = "camber_session"
	sessionTokenBytes = 32
)

var errNotInitialized = errors.New("auth queries not initialized")

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

func sessionTTL() time.Duration {
	if appConfig == nil {
		return 7 * 24 * time.Hour
	}
	return appConfig.Auth.SessionTTL
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateSession persists a new session row for the user and sets the
// session cookie. Any existing sessions for the user are cleared first,
// one live session per user.
func CreateSession(w http.ResponseWriter, r *http.Request, userID string) error {
	if w == nil {
		return errors.New("session requires response writer")
	}
	if queries == nil {
		return errNotInitialized
	}

	ctx := r.Context()
	if err := queries.DeleteSessionsByUserID(ctx, userID); err != nil {
		return err
	}

	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(sessionTTL())
	params := dbgen.CreateSessionParams{
		ID:        uuid.New().String(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if ip := ratelimit.GetClientIP(r, false); ip != "" {
		params.IpAddress = sql.NullString{String: ip, Valid: true}
	}
	if ua := r.UserAgent(); ua != "" {
		params.UserAgent = sql.NullString{String: ua, Valid: true}
	}

	if _, err := queries.CreateSession(ctx, params); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL().Seconds()),
	})

	return nil
}

// ClearSession deletes the session row referenced by the request cookie
// and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		ClearSessionCookie(w)
		return
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && queries != nil {
		_ = queries.DeleteSessionByToken(r.Context(), cookie.Value)
	}

	ClearSessionCookie(w)
}

func ClearSessionCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the session cookie against the sessions
// table. The lookup runs on every request; nothing about auth state is
// cached server-side. A missing, unknown, or expired token yields a nil
// user (and clears the stale cookie), not an error.
func UserFromRequest(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	if queries == nil {
		ClearSessionCookie(w)
		return nil, errNotInitialized
	}

	return userForToken(r.Context(), w, cookie.Value)
}

func userForToken(ctx context.Context, w http.ResponseWriter, token string) (*authz.AuthUser, error) {
	session, err := queries.GetSessionByToken(ctx, token)
	if err != nil {
		ClearSessionCookie(w)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if !session.ExpiresAt.After(time.Now().UTC()) {
		_ = queries.DeleteSessionByToken(ctx, token)
		ClearSessionCookie(w)
		return nil, nil
	}

	user, err := queries.GetUserByID(ctx, session.UserID)
	if err != nil {
		_ = queries.DeleteSessionByToken(ctx, token)
		ClearSessionCookie(w)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &authz.AuthUser{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		EmailVerified: user.EmailVerified,
	}, nil
}
