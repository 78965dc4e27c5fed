package admin

import (
	"crypto/sha256"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/adarsh14103/portfolio-backend/config"
)

// Session is the explicit session object behind the admin gate. The
// authenticated flag survives restarts as an HMAC-signed token in a
// session file; init reads and verifies it, teardown deletes it.
type Session struct {
	path          string
	secret        []byte
	ttl           time.Duration
	authenticated bool
}

// NewSession derives the signing secret from the admin passkey, so a
// token persisted under one passkey stops verifying when the passkey
// changes.
func NewSession(cfg map[string]string, passkey string) *Session {
	sum := sha256.Sum256([]byte("portfolio-admin-session:" + passkey))

	return &Session{
		path:   config.GetString(cfg, "ADMIN_SESSION_FILE", ".admin-session"),
		secret: sum[:],
		ttl:    time.Duration(config.GetInt(cfg, "ADMIN_SESSION_TTL_HOURS", 24)) * time.Hour,
	}
}

// Authenticated reports whether the gate is currently open.
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Restore reads the persisted token and re-opens the gate when the
// signature verifies and the token has not expired. An unreadable or
// invalid token just leaves the session locked.
func (s *Session) Restore() bool {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}

	token, err := jwt.Parse(string(raw), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		log.Debug().Err(err).Msg("stored admin session token rejected")
		return false
	}

	s.authenticated = true
	return true
}

// Open marks the session authenticated and persists a fresh token.
func (s *Session) Open() error {
	claims := jwt.MapClaims{
		"sub": "admin",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, []byte(signed), 0o600); err != nil {
		return err
	}

	s.authenticated = true
	return nil
}

// Close locks the session and removes the persisted token.
func (s *Session) Close() {
	s.authenticated = false
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to remove admin session file")
	}
}
