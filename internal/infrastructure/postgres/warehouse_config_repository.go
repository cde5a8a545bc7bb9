package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseConfigRepository = (*WarehouseConfigRepo)(nil)

// WarehouseConfigRepo clave/valor de configuración de bodega: taxonomía de
// niveles (JSON) y feature flags.
type WarehouseConfigRepo struct {
	q Querier
}

// NewWarehouseConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseConfigRepository(q Querier) *WarehouseConfigRepo {
	return &WarehouseConfigRepo{q: q}
}

func (r *WarehouseConfigRepo) get(key string) (string, bool, error) {
	var value string
	err := r.q.QueryRow(context.Background(),
		`SELECT value FROM warehouse_config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get config %s: %w", key, err)
	}
	return value, true, nil
}

func (r *WarehouseConfigRepo) set(key, value string) error {
	query := `
		INSERT INTO warehouse_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.q.Exec(context.Background(), query, key, value); err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

// GetLevels lee la taxonomía de niveles (lista vacía si no está configurada).
func (r *WarehouseConfigRepo) GetLevels() ([]entity.LocationLevel, error) {
	raw, ok, err := r.get(repository.ConfigKeyLocationLevels)
	if err != nil || !ok {
		return nil, err
	}
	var levels []entity.LocationLevel
	if err := json.Unmarshal([]byte(raw), &levels); err != nil {
		return nil, fmt.Errorf("decodificar taxonomía: %w", err)
	}
	return levels, nil
}

// SaveLevels guarda la taxonomía de niveles como JSON.
func (r *WarehouseConfigRepo) SaveLevels(levels []entity.LocationLevel) error {
	raw, err := json.Marshal(levels)
	if err != nil {
		return fmt.Errorf("codificar taxonomía: %w", err)
	}
	return r.set(repository.ConfigKeyLocationLevels, string(raw))
}

// GetFlag lee un feature flag (false si no existe).
func (r *WarehouseConfigRepo) GetFlag(key string) (bool, error) {
	raw, ok, err := r.get(key)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

// SetFlag guarda un feature flag.
func (r *WarehouseConfigRepo) SetFlag(key string, value bool) error {
	raw := "false"
	if value {
		raw = "true"
	}
	return r.set(key, raw)
}
