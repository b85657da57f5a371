package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mock-auth/internal/domain"
	"mock-auth/internal/repository"
)

// IdentitySource distingue registros persistidos de identidades fantasma
// fabricadas al vuelo, para que la frontera de persistencia sea explícita.
type IdentitySource int

const (
	SourcePersisted IdentitySource = iota
	SourceEphemeral
)

// Identity es el resultado de resolver un usuario durante una operación.
type Identity struct {
	User   domain.User
	Source IdentitySource
}

func (i Identity) Persisted() bool {
	return i.Source == SourcePersisted
}

// HealthReport resume el estado del motor para /health.
type HealthReport struct {
	Status       string
	Users        int
	ActiveTokens int64
}

// AuthService es el motor de autenticación mock: acepta cualquier
// credencial, emite tokens sintéticos y decide cuándo un registro se crea,
// se reutiliza o se fabrica sin persistir.
type AuthService struct {
	logger      *zap.Logger
	store       *repository.UserStore
	tokens      *TokenService
	defaultName string
}

func NewAuthService(logger *zap.Logger, store *repository.UserStore, tokens *TokenService, defaultName string) *AuthService {
	if defaultName == "" {
		defaultName = "New User"
	}
	return &AuthService{
		logger:      logger,
		store:       store,
		tokens:      tokens,
		defaultName: defaultName,
	}
}

// Signup crea y persiste un registro nuevo y emite un par de tokens.
// El email es único en la colección: un signup repetido reutiliza el
// registro existente en vez de duplicarlo. El password nunca se
// inspecciona ni se guarda.
func (s *AuthService) Signup(ctx context.Context, email, name string) (domain.User, TokenPair) {
	if existing, ok := s.store.FindByEmail(email); ok {
		return existing, s.tokens.IssuePair(ctx)
	}
	if name == "" {
		name = s.defaultName
	}
	user := domain.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          name,
		EmailVerified: true,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	s.store.Append(ctx, user)
	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, s.tokens.IssuePair(ctx)
}

// Signin reutiliza el user_id del registro existente o fabrica una
// identidad efímera que nunca toca el snapshot. No verifica el password.
func (s *AuthService) Signin(ctx context.Context, email string) (Identity, TokenPair) {
	if user, ok := s.store.FindByEmail(email); ok {
		return Identity{User: user, Source: SourcePersisted}, s.tokens.IssuePair(ctx)
	}
	ghost := domain.User{
		ID:            uuid.NewString(),
		Email:         email,
		EmailVerified: true,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	return Identity{User: ghost, Source: SourceEphemeral}, s.tokens.IssuePair(ctx)
}

// Refresh emite un par nuevo sin verificar ninguna relación con emisiones
// previas.
func (s *AuthService) Refresh(ctx context.Context) TokenPair {
	return s.tokens.IssuePair(ctx)
}

// Profile devuelve el primer registro de la colección o, si está vacía, un
// perfil administrador fabricado que tampoco se persiste.
func (s *AuthService) Profile(_ context.Context) Identity {
	if user, ok := s.store.First(); ok {
		return Identity{User: user, Source: SourcePersisted}
	}
	admin := domain.User{
		ID:            uuid.NewString(),
		Email:         "admin@example.com",
		Name:          "Admin User",
		EmailVerified: true,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	return Identity{User: admin, Source: SourceEphemeral}
}

// Health reporta estado y estadísticas puntuales de diagnóstico.
func (s *AuthService) Health(ctx context.Context) HealthReport {
	active, err := s.tokens.ActiveCount(ctx)
	if err != nil {
		s.logger.Warn("issued token count failed", zap.Error(err))
		active = 0
	}
	return HealthReport{
		Status:       "ok",
		Users:        s.store.Len(),
		ActiveTokens: active,
	}
}
