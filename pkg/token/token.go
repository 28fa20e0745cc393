package token

import (
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errors.
var (
	ErrMissingSecret        = errors.New("token: signing secret is required")
	ErrUnsupportedAlgorithm = errors.New("token: unsupported signing algorithm")
	ErrInvalidLifetime      = errors.New("token: lifetime must be positive")
)

// Reserved timing claims managed by the service.
const (
	ClaimIssuedAt  = "iat"
	ClaimNotBefore = "nbf"
	ClaimExpiresAt = "exp"
)

// Claims is the key/value payload embedded in a token.
type Claims map[string]any

// Config configures the token service.
type Config struct {
	Secret           string        `env:"TOKEN_SECRET"`
	Algorithm        string        `env:"TOKEN_ALGORITHM" envDefault:"HS256"`
	Lifetime         time.Duration `env:"TOKEN_LIFETIME" envDefault:"24h"`
	RefreshThreshold time.Duration `env:"TOKEN_REFRESH_THRESHOLD" envDefault:"4h"`
}

var algorithms = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Service creates, verifies and refreshes signed session tokens.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	method    *jwt.SigningMethodHMAC
	now       func() time.Time
	secret    []byte
	lifetime  time.Duration
	threshold time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithClock overrides the wall clock used when no explicit time is given.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New builds a Service. A missing secret is a fatal configuration error.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	alg := strings.ToUpper(cfg.Algorithm)
	if alg == "" {
		alg = "HS256"
	}
	method, ok := algorithms[alg]
	if !ok {
		return nil, ErrUnsupportedAlgorithm
	}

	lifetime := cfg.Lifetime
	if lifetime == 0 {
		lifetime = 24 * time.Hour
	}
	if lifetime < 0 {
		return nil, ErrInvalidLifetime
	}
	threshold := cfg.RefreshThreshold
	if threshold <= 0 {
		threshold = lifetime / 6
	}

	s := &Service{
		method:    method,
		now:       time.Now,
		secret:    []byte(cfg.Secret),
		lifetime:  lifetime,
		threshold: threshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Lifetime returns the configured token lifetime.
func (s *Service) Lifetime() time.Duration {
	return s.lifetime
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Create signs claims with iat = nbf = now and exp = now + lifetime.
func (s *Service) Create(claims Claims) (string, error) {
	return s.CreateAt(claims, s.now())
}

// CreateAt is Create with an explicit clock reading.
// Timestamps are truncated to whole seconds.
func (s *Service) CreateAt(claims Claims, now time.Time) (string, error) {
	ts := now.Unix()

	mc := make(jwt.MapClaims, len(claims)+3)
	maps.Copy(mc, claims)
	mc[ClaimIssuedAt] = ts
	mc[ClaimNotBefore] = ts
	mc[ClaimExpiresAt] = now.Add(s.lifetime).Unix()

	return jwt.NewWithClaims(s.method, mc).SignedString(s.secret)
}

// Verify returns the token's claims and true when the signature, expiry and
// not-before checks all pass. Any failure returns false, never an error.
func (s *Service) Verify(token string) (Claims, bool) {
	return s.VerifyAt(token, s.now())
}

// VerifyAt is Verify with an explicit clock reading.
// A token whose exp equals now is expired.
func (s *Service) VerifyAt(token string, now time.Time) (Claims, bool) {
	if token == "" {
		return nil, false
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	mc := jwt.MapClaims{}
	parsed, err := parser.ParseWithClaims(token, mc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return Claims(mc), true
}

// ShouldRefresh reports whether the token expires within the refresh
// threshold. The boundary is strict: exp - now == threshold does not refresh.
func (s *Service) ShouldRefresh(claims Claims) bool {
	return s.ShouldRefreshAt(claims, s.now())
}

// ShouldRefreshAt is ShouldRefresh with an explicit clock reading.
func (s *Service) ShouldRefreshAt(claims Claims, now time.Time) bool {
	exp, err := jwt.MapClaims(claims).GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	remaining := exp.Unix() - now.Unix()
	return remaining < int64(s.threshold/time.Second)
}

// Refresh strips the reserved timing claims and signs a new token.
func (s *Service) Refresh(claims Claims) (string, error) {
	return s.RefreshAt(claims, s.now())
}

// RefreshAt is Refresh with an explicit clock reading.
func (s *Service) RefreshAt(claims Claims, now time.Time) (string, error) {
	return s.CreateAt(StripTiming(claims), now)
}

// StripTiming returns a copy of claims without iat, nbf and exp.
func StripTiming(claims Claims) Claims {
	out := maps.Clone(claims)
	if out == nil {
		out = Claims{}
	}
	delete(out, ClaimIssuedAt)
	delete(out, ClaimNotBefore)
	delete(out, ClaimExpiresAt)
	return out
}

// ExpiresAt returns the exp claim as a time.
func ExpiresAt(claims Claims) (time.Time, bool) {
	exp, err := jwt.MapClaims(claims).GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
