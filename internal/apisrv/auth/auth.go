package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/evlampy/storeboard/internal/auth/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Server issues and verifies dashboard access tokens. A single master
// password guards the whole dashboard; there is no per-user account store.
type Server struct {
	JwtAuth        *jwtauth.JWTAuth
	jwtTTL         time.Duration
	masterPassword string
}

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	MasterPassword string `mapstructure:"master_password"`
	JWTTTL         string `mapstructure:"jwt_ttl"`
}

// New creates a new auth server.
func New(c *Config) (*Server, error) {
	if c.JWTSecret == "" || c.MasterPassword == "" {
		return nil, fmt.Errorf("incomplete auth config")
	}
	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("bad jwt ttl %q: %w", c.JWTTTL, err)
	}
	return &Server{
		JwtAuth:        jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:         ttl,
		masterPassword: c.MasterPassword,
	}, nil
}

// Login exchanges the master password for an access token.
func (s *Server) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.masterPassword)) != 1 {
		return "", fmt.Errorf("not authenticated")
	}
	return jwt.NewToken(s.JwtAuth, "dashboard", s.jwtTTL)
}

// WithAuth middleware checks if the request carries a valid token.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		_, err := jwt.VerifyToken(s.JwtAuth, token)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid token %v", err.Error()), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
