package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Prefijos que identifican el tipo de token emitido.
const (
	AccessTokenPrefix  = "mock_access_"
	RefreshTokenPrefix = "mock_refresh_"
)

const bearerTokenType = "bearer"

// TokenPair es el par de credenciales sintéticas emitido en cada operación.
// La expiración es solo metadata informativa, ningún consumidor la verifica.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	ExpiresAt    time.Time
}

// TokenService emite pares de tokens opacos, únicos por generación aleatoria.
type TokenService struct {
	ttl     time.Duration
	tracker IssuedTokenTracker
}

func NewTokenService(ttl time.Duration, tracker IssuedTokenTracker) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if tracker == nil {
		tracker = NewMemoryIssuedTokenTracker()
	}
	return &TokenService{ttl: ttl, tracker: tracker}
}

// IssuePair genera un par nuevo. El registro en el tracker es solo para
// diagnóstico; una falla ahí nunca afecta la emisión.
func (s *TokenService) IssuePair(ctx context.Context) TokenPair {
	now := time.Now().UTC()
	pair := TokenPair{
		AccessToken:  AccessTokenPrefix + uuid.NewString(),
		RefreshToken: RefreshTokenPrefix + uuid.NewString(),
		TokenType:    bearerTokenType,
		ExpiresIn:    int64(s.ttl.Seconds()),
		ExpiresAt:    now.Add(s.ttl),
	}
	_ = s.tracker.Track(ctx, pair.AccessToken, s.ttl)
	return pair
}

// ActiveCount devuelve cuántos tokens emitidos siguen dentro de su TTL.
func (s *TokenService) ActiveCount(ctx context.Context) (int64, error) {
	return s.tracker.Count(ctx)
}
