package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"mock-auth/internal/domain"
)

// UserStore mantiene la colección de usuarios en memoria, reflejada al
// snapshot durable de forma síncrona en cada mutación. Las fallas de
// almacenamiento se registran y se descartan: el proceso sigue con el
// estado en memoria.
type UserStore struct {
	logger   *zap.Logger
	snapshot SnapshotStore

	mu  sync.Mutex
	col domain.Collection
}

// NewUserStore carga la colección desde el snapshot una sola vez al arrancar.
func NewUserStore(ctx context.Context, logger *zap.Logger, snapshot SnapshotStore) *UserStore {
	col, err := snapshot.Load(ctx)
	if err != nil {
		logger.Warn("snapshot load failed, starting empty", zap.Error(err))
		col = domain.Collection{Users: []domain.User{}}
	}
	if col.Users == nil {
		col.Users = []domain.User{}
	}
	return &UserStore{
		logger:   logger,
		snapshot: snapshot,
		col:      col,
	}
}

// FindByEmail busca por email exacto, sensible a mayúsculas.
func (s *UserStore) FindByEmail(email string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.col.Users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

// Append agrega el registro y reescribe el snapshot antes de retornar.
func (s *UserStore) Append(ctx context.Context, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.col.Users = append(s.col.Users, user)
	if err := s.snapshot.Save(ctx, s.col); err != nil {
		s.logger.Warn("snapshot save failed", zap.Error(err))
	}
}

// First devuelve el primer registro en orden de inserción.
func (s *UserStore) First() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.col.Users) == 0 {
		return domain.User{}, false
	}
	return s.col.Users[0], true
}

// All devuelve una copia de la colección en orden de inserción.
func (s *UserStore) All() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.col.Users))
	copy(out, s.col.Users)
	return out
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.col.Users)
}
