package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultSessionTTL    = 24 * time.Hour
	DefaultSessionCookie = "_api_session"

	sessionIssuer = "productapi"
)

var ErrInvalidSession = errors.New("invalid session")

// Session is the per-client state carried in the session cookie.
type Session struct {
	Username string
}

func (s Session) Authenticated() bool { return s.Username != "" }

type SessionConfig struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool

	// Now overrides the clock used when issuing tokens.
	Now func() time.Time
}

// SessionManager keeps sessions client-side as HS256-signed tokens in a cookie.
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	m := &SessionManager{
		secret:     cfg.Secret,
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		now:        cfg.Now,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultSessionTTL
	}
	if m.cookieName == "" {
		m.cookieName = DefaultSessionCookie
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

func (m *SessionManager) CookieName() string { return m.cookieName }

func (m *SessionManager) Token(username string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   username,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *SessionManager) Parse(token string) (Session, error) {
	var c jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || parsed == nil || !parsed.Valid || c.Subject == "" {
		return Session{}, ErrInvalidSession
	}
	return Session{Username: c.Subject}, nil
}

// Start signs the username into a fresh session cookie.
func (m *SessionManager) Start(w http.ResponseWriter, username string) error {
	tok, err := m.Token(username)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  m.now().Add(m.ttl),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear expires the session cookie on the client.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Load reads the session from the request cookie. A missing, tampered or
// expired cookie yields the empty session.
func (m *SessionManager) Load(r *http.Request) Session {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return Session{}
	}
	s, err := m.Parse(c.Value)
	if err != nil {
		return Session{}
	}
	return s
}

type ctxKey string

const sessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey).(Session)
	return s
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// LoadSession puts the request's session into its context for the gate and handlers.
func (m *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), m.Load(r))))
	})
}
