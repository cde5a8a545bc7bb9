package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ConsecutiveRepository = (*ConsecutiveRepo)(nil)

// ConsecutiveRepo emite números de documento por secuencia sobre PostgreSQL.
// Debe usarse atado a la misma tx que la fila que consume el número.
type ConsecutiveRepo struct {
	q Querier
}

// NewConsecutiveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsecutiveRepository(q Querier) *ConsecutiveRepo {
	return &ConsecutiveRepo{q: q}
}

// Next incrementa y lee el contador en una sola sentencia atómica. El upsert
// serializa emisiones concurrentes de la misma secuencia: dos recepciones
// simultáneas jamás comparten número.
func (r *ConsecutiveRepo) Next(sequence string) (int64, error) {
	query := `
		INSERT INTO consecutives (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = consecutives.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, sequence).Scan(&n); err != nil {
		return 0, fmt.Errorf("next consecutive %s: %w", sequence, err)
	}
	return n, nil
}
