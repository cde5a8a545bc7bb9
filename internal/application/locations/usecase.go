package locations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LocationUseCase opera el árbol de ubicaciones: altas, ediciones
// estructurales (con revalidación de ciclos y taxonomía), bajas, creación
// masiva por patrón y las lecturas de hojas/hijos/camino.
type LocationUseCase struct {
	locRepo     repository.LocationRepository
	configRepo  repository.WarehouseConfigRepository
	unitRepo    repository.InventoryUnitRepository
	itemLocRepo repository.ItemLocationRepository
	txRunner    TxRunner
	leaves      *hierarchy.LeafCache
	log         *logger.Logger
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	locRepo repository.LocationRepository,
	configRepo repository.WarehouseConfigRepository,
	unitRepo repository.InventoryUnitRepository,
	itemLocRepo repository.ItemLocationRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		locRepo:     locRepo,
		configRepo:  configRepo,
		unitRepo:    unitRepo,
		itemLocRepo: itemLocRepo,
		txRunner:    txRunner,
		leaves:      hierarchy.NewLeafCache(),
		log:         log,
	}
}

// AddInput datos para crear una ubicación.
type AddInput struct {
	Name     string
	Code     string
	Type     string
	ParentID *string
}

// Add crea una ubicación validando código único, padre existente y orden de
// taxonomía. Un nodo nuevo no puede cerrar ciclos (nadie lo referencia aún).
func (uc *LocationUseCase) Add(in AddInput) (*entity.Location, error) {
	if in.Name == "" || in.Code == "" || in.Type == "" {
		return nil, fmt.Errorf("name, code y type son requeridos: %w", domain.ErrValidation)
	}
	order, err := uc.levelOrder()
	if err != nil {
		return nil, err
	}
	if !order.Contains(in.Type) {
		return nil, fmt.Errorf("tipo %q fuera de la taxonomía: %w", in.Type, domain.ErrValidation)
	}
	if existing, err := uc.locRepo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("código %q ya existe: %w", in.Code, domain.ErrValidation)
	}
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := uc.locRepo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("padre %s no existe: %w", *in.ParentID, domain.ErrValidation)
		}
		if !order.Precedes(parent.Type, in.Type) {
			return nil, fmt.Errorf("tipo %q no puede colgar de %q: %w", in.Type, parent.Type, domain.ErrValidation)
		}
	} else {
		in.ParentID = nil
	}

	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Type:      in.Type,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locRepo.Create(loc); err != nil {
		return nil, err
	}
	uc.leaves.Invalidate()
	return loc, nil
}

// UpdateInput datos para editar una ubicación (rename / reparent).
type UpdateInput struct {
	ID       string
	Name     string
	Code     string
	Type     string
	ParentID *string
}

// Update edita una ubicación. Si cambia el padre se revalida que la arista
// nueva no cierre un ciclo (un nodo no puede volverse padre de su propio
// descendiente) y que respete el orden de la taxonomía. Los movimientos
// estructurales sobre subárboles con ledger debajo se permiten: solo se
// revalida, no se bloquea.
func (uc *LocationUseCase) Update(in UpdateInput) (*entity.Location, error) {
	if in.ID == "" || in.Name == "" || in.Code == "" || in.Type == "" {
		return nil, fmt.Errorf("id, name, code y type son requeridos: %w", domain.ErrValidation)
	}
	all, err := uc.locRepo.ListAll()
	if err != nil {
		return nil, err
	}
	tree := hierarchy.NewTree(all)
	loc := tree.Get(in.ID)
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.levelOrder()
	if err != nil {
		return nil, err
	}
	if !order.Contains(in.Type) {
		return nil, fmt.Errorf("tipo %q fuera de la taxonomía: %w", in.Type, domain.ErrValidation)
	}
	if in.Code != loc.Code {
		if other, err := uc.locRepo.GetByCode(in.Code); err != nil {
			return nil, err
		} else if other != nil && other.ID != in.ID {
			return nil, fmt.Errorf("código %q ya existe: %w", in.Code, domain.ErrValidation)
		}
	}
	if in.ParentID != nil && *in.ParentID == "" {
		in.ParentID = nil
	}
	if in.ParentID != nil {
		parent := tree.Get(*in.ParentID)
		if parent == nil {
			return nil, fmt.Errorf("padre %s no existe: %w", *in.ParentID, domain.ErrValidation)
		}
		if tree.WouldCycle(in.ID, *in.ParentID) {
			return nil, fmt.Errorf("la arista %s→%s cierra un ciclo: %w", *in.ParentID, in.ID, domain.ErrValidation)
		}
		if !order.Precedes(parent.Type, in.Type) {
			return nil, fmt.Errorf("tipo %q no puede colgar de %q: %w", in.Type, parent.Type, domain.ErrValidation)
		}
	}
	if in.Type != loc.Type {
		// Cambiar el tipo también revalida las aristas hacia abajo: el tipo
		// nuevo debe seguir precediendo al de cada hijo.
		for _, child := range tree.Children([]string{in.ID}) {
			if !order.Precedes(in.Type, child.Type) {
				return nil, fmt.Errorf("tipo %q no puede preceder al hijo %q: %w", in.Type, child.Type, domain.ErrValidation)
			}
		}
	}

	loc.Name = in.Name
	loc.Code = in.Code
	loc.Type = in.Type
	loc.ParentID = in.ParentID
	loc.UpdatedAt = time.Now()
	if err := uc.locRepo.Update(loc); err != nil {
		return nil, err
	}
	uc.leaves.Invalidate()
	return loc, nil
}

// Delete elimina una ubicación solo si no tiene hijos ni referencias del
// ledger o de asignaciones (ErrConflict en caso contrario).
func (uc *LocationUseCase) Delete(id, actor string) error {
	all, err := uc.locRepo.ListAll()
	if err != nil {
		return err
	}
	tree := hierarchy.NewTree(all)
	if tree.Get(id) == nil {
		return domain.ErrNotFound
	}
	if tree.HasChildren(id) {
		return fmt.Errorf("la ubicación tiene hijos: %w", domain.ErrConflict)
	}
	if n, err := uc.unitRepo.CountActiveByLocation(id); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("la ubicación tiene unidades en el ledger: %w", domain.ErrConflict)
	}
	if n, err := uc.itemLocRepo.CountByLocation(id); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("la ubicación tiene asignaciones: %w", domain.ErrConflict)
	}
	if err := uc.locRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("location_id", id).Str("actor", actor).Msg("ubicación eliminada")
	uc.leaves.Invalidate()
	return nil
}

// BulkInput parámetros de creación masiva por patrón.
type BulkInput struct {
	Pattern  string // rack | clone
	ParentID string
	Rack     hierarchy.RackParams
	Clone    hierarchy.CloneParams
}

// AddBulk crea un lote de ubicaciones en una sola transacción: o se crea la
// grilla completa o nada. Valida códigos y taxonomía antes de escribir.
func (uc *LocationUseCase) AddBulk(ctx context.Context, in BulkInput) ([]*entity.Location, error) {
	all, err := uc.locRepo.ListAll()
	if err != nil {
		return nil, err
	}
	tree := hierarchy.NewTree(all)
	parent := tree.Get(in.ParentID)
	if parent == nil {
		return nil, fmt.Errorf("padre %s no existe: %w", in.ParentID, domain.ErrValidation)
	}

	var specs []hierarchy.NodeSpec
	switch in.Pattern {
	case hierarchy.BulkPatternRack:
		specs, err = hierarchy.BuildRackGrid(in.Rack)
	case hierarchy.BulkPatternClone:
		specs, err = hierarchy.CloneSubtree(tree, in.Clone)
	default:
		return nil, fmt.Errorf("patrón %q no soportado: %w", in.Pattern, domain.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	order, err := uc.levelOrder()
	if err != nil {
		return nil, err
	}
	existingCodes := make(map[string]bool, len(all))
	for _, loc := range all {
		existingCodes[loc.Code] = true
	}
	now := time.Now()
	batch := make([]*entity.Location, len(specs))
	for i, spec := range specs {
		if existingCodes[spec.Code] {
			return nil, fmt.Errorf("código %q ya existe: %w", spec.Code, domain.ErrValidation)
		}
		existingCodes[spec.Code] = true

		var parentType string
		var parentID string
		if spec.ParentIndex < 0 {
			parentType = parent.Type
			parentID = parent.ID
		} else {
			parentType = batch[spec.ParentIndex].Type
			parentID = batch[spec.ParentIndex].ID
		}
		if !order.Precedes(parentType, spec.Type) {
			return nil, fmt.Errorf("tipo %q no puede colgar de %q: %w", spec.Type, parentType, domain.ErrValidation)
		}
		pid := parentID
		batch[i] = &entity.Location{
			ID:        uuid.New().String(),
			Name:      spec.Name,
			Code:      spec.Code,
			Type:      spec.Type,
			ParentID:  &pid,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	err = uc.txRunner.RunLocations(ctx, func(locRepo repository.LocationRepository) error {
		for _, loc := range batch {
			if err := locRepo.Create(loc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.leaves.Invalidate()
	uc.log.Info().Str("pattern", in.Pattern).Int("count", len(batch)).Msg("lote de ubicaciones creado")
	return batch, nil
}

// Selectable devuelve las ubicaciones hoja (los únicos destinos válidos para
// inventario). Usa la caché con invalidación atada a cada escritura.
func (uc *LocationUseCase) Selectable() ([]*entity.Location, error) {
	return uc.leaves.Get(func() ([]*entity.Location, error) {
		all, err := uc.locRepo.ListAll()
		if err != nil {
			return nil, err
		}
		return hierarchy.NewTree(all).Selectable(), nil
	})
}

// Children devuelve los hijos directos de los padres dados. Sin padres
// devuelve las raíces, para la carga perezosa del árbol en la UI.
func (uc *LocationUseCase) Children(parentIDs []string) ([]*entity.Location, error) {
	all, err := uc.locRepo.ListAll()
	if err != nil {
		return nil, err
	}
	tree := hierarchy.NewTree(all)
	if len(parentIDs) == 0 {
		return tree.Roots(), nil
	}
	return tree.Children(parentIDs), nil
}

// RenderPath devuelve el camino legible raíz→nodo. Si el guardián de ciclos
// se dispara, loguea en ERROR (datos corruptos) y propaga.
func (uc *LocationUseCase) RenderPath(id string) (string, error) {
	all, err := uc.locRepo.ListAll()
	if err != nil {
		return "", err
	}
	path, err := hierarchy.NewTree(all).Path(id)
	if err != nil {
		if errorsIsHierarchy(err) {
			uc.log.Error().Str("location_id", id).Err(err).Msg("jerarquía corrupta al renderizar camino")
		}
		return "", err
	}
	return path, nil
}

// SearchResult una ubicación con su camino rendereado.
type SearchResult struct {
	Location *entity.Location
	Path     string
}

// Search busca ubicaciones cuyo camino contenga la subcadena, insensible a
// mayúsculas y acentos ("bodega" encuentra "Bodegá").
func (uc *LocationUseCase) Search(query string) ([]SearchResult, error) {
	all, err := uc.locRepo.ListAll()
	if err != nil {
		return nil, err
	}
	tree := hierarchy.NewTree(all)
	needle := foldForSearch(query)
	var out []SearchResult
	for _, loc := range all {
		path, err := tree.Path(loc.ID)
		if err != nil {
			uc.log.Error().Str("location_id", loc.ID).Err(err).Msg("jerarquía corrupta durante búsqueda")
			return nil, err
		}
		if needle == "" || containsFolded(path, needle) {
			out = append(out, SearchResult{Location: loc, Path: path})
		}
	}
	return out, nil
}

// Levels devuelve la taxonomía de niveles configurada.
func (uc *LocationUseCase) Levels() ([]entity.LocationLevel, error) {
	return uc.configRepo.GetLevels()
}

// SaveLevels reemplaza la taxonomía. Tipos únicos y no vacíos; el orden de
// la lista es el orden jerárquico.
func (uc *LocationUseCase) SaveLevels(levels []entity.LocationLevel) error {
	if len(levels) == 0 {
		return fmt.Errorf("la taxonomía no puede quedar vacía: %w", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(levels))
	for _, lv := range levels {
		if lv.Type == "" || lv.Name == "" {
			return fmt.Errorf("cada nivel requiere type y name: %w", domain.ErrValidation)
		}
		if seen[lv.Type] {
			return fmt.Errorf("tipo %q repetido en la taxonomía: %w", lv.Type, domain.ErrValidation)
		}
		seen[lv.Type] = true
	}
	return uc.configRepo.SaveLevels(levels)
}

func (uc *LocationUseCase) levelOrder() (hierarchy.LevelOrder, error) {
	levels, err := uc.configRepo.GetLevels()
	if err != nil {
		return hierarchy.LevelOrder{}, err
	}
	if len(levels) == 0 {
		return hierarchy.LevelOrder{}, fmt.Errorf("taxonomía de niveles no configurada: %w", domain.ErrValidation)
	}
	return hierarchy.NewLevelOrder(levels), nil
}
