package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Blob es el recurso durable: un único documento que se lee y se pisa entero.
type Blob interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// RosterRepo no tiene locks: cada Load/Save es una lectura o escritura
// completa y gana el último que escribe.
type RosterRepo struct{ blob Blob }

func NewRosterRepo(b Blob) *RosterRepo { return &RosterRepo{blob: b} }

func (r *RosterRepo) Load(ctx context.Context) (domain.Roster, error) {
	data, err := r.blob.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read roster: %w", domain.ErrIOFailure, err)
	}
	return decodeRoster(data)
}

func (r *RosterRepo) Save(ctx context.Context, roster domain.Roster) error {
	data, err := encodeRoster(roster)
	if err != nil {
		return fmt.Errorf("%w: encode roster: %w", domain.ErrIOFailure, err)
	}
	if err := r.blob.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: write roster: %w", domain.ErrIOFailure, err)
	}
	return nil
}

// Import valida un documento de roster tal cual viene de afuera (por ejemplo
// un data.json viejo) y lo escribe en el blob. Se usa para sembrar el backend sql.
func (r *RosterRepo) Import(ctx context.Context, data []byte) (int, error) {
	roster, err := decodeRoster(data)
	if err != nil {
		return 0, err
	}
	if err := r.Save(ctx, roster); err != nil {
		return 0, err
	}
	return len(roster), nil
}
