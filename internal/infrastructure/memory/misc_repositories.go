package memory

import (
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Verify interface compliance
var _ repository.ConsecutiveRepository = (*ConsecutiveRepository)(nil)
var _ repository.UserRepository = (*UserRepository)(nil)
var _ repository.ProductRepository = (*ProductRepository)(nil)
var _ repository.WarehouseConfigRepository = (*WarehouseConfigRepository)(nil)

// ConsecutiveRepository emite consecutivos en memoria.
type ConsecutiveRepository struct {
	s *Store
}

// Next incrementa y lee el contador de la secuencia.
func (r *ConsecutiveRepository) Next(sequence string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.consecutives[sequence]++
	return r.s.consecutives[sequence], nil
}

// UserRepository usuarios en memoria.
type UserRepository struct {
	s *Store
}

// Create persiste un usuario; email duplicado falla como el constraint.
func (r *UserRepository) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

// GetByID obtiene un usuario (nil si no existe).
func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// FindByEmail busca por email (nil si no existe).
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// ProductRepository catálogo en memoria.
type ProductRepository struct {
	s *Store
}

// Create persiste un producto.
func (r *ProductRepository) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *product
	r.s.products[product.ID] = &c
	return nil
}

// GetByID obtiene un producto (nil si no existe).
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

// GetByIDs resuelve varios productos de una vez.
func (r *ProductRepository) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Product)
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			c := *p
			out[id] = &c
		}
	}
	return out, nil
}

// List lista el catálogo ordenado por SKU.
func (r *ProductRepository) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		c := *p
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	if offset > 0 {
		if offset >= len(list) {
			return nil, nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// WarehouseConfigRepository configuración en memoria.
type WarehouseConfigRepository struct {
	s *Store
}

// GetLevels lee la taxonomía configurada.
func (r *WarehouseConfigRepository) GetLevels() ([]entity.LocationLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.LocationLevel(nil), r.s.levels...), nil
}

// SaveLevels guarda la taxonomía.
func (r *WarehouseConfigRepository) SaveLevels(levels []entity.LocationLevel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.levels = append([]entity.LocationLevel(nil), levels...)
	return nil
}

// GetFlag lee un feature flag.
func (r *WarehouseConfigRepository) GetFlag(key string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.flags[key], nil
}

// SetFlag guarda un feature flag.
func (r *WarehouseConfigRepository) SetFlag(key string, value bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.flags[key] = value
	return nil
}
