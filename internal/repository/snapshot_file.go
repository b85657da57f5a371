package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mock-auth/internal/domain"
)

// FileSnapshotStore implementa SnapshotStore sobre un archivo JSON local.
// Cada Save reescribe el documento completo; no hay protección contra
// escrituras parciales, durabilidad suficiente para un mock de desarrollo.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

// Load lee el documento completo. Si el archivo no existe, inicializa una
// colección vacía y la escribe en disco.
func (s *FileSnapshotStore) Load(ctx context.Context) (domain.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		col := domain.Collection{Users: []domain.User{}}
		if err := s.Save(ctx, col); err != nil {
			return col, err
		}
		return col, nil
	}
	if err != nil {
		return domain.Collection{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var col domain.Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return domain.Collection{}, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return col, nil
}

// Save reescribe el documento completo en disco.
func (s *FileSnapshotStore) Save(_ context.Context, col domain.Collection) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o770); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o660); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	return nil
}
