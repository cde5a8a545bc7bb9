package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/assignment"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/locations"
	"github.com/jhoicas/almacen-api/internal/application/locks"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC   *locations.LocationUseCase
	LedgerUC     *ledger.LedgerUseCase
	LockUC       *locks.LockUseCase
	AssignmentUC *assignment.AssignmentUseCase
	ProductUC    *usecase.ProductUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ubicaciones: estructura solo para bodegueros; lecturas para todos
	locGroup := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locGroup.Get("/selectable", locationHandler.Selectable)
	locGroup.Get("/children", locationHandler.Children)
	locGroup.Get("/search", locationHandler.Search)
	locGroup.Get("/:id/path", locationHandler.Path)
	locGroup.Post("/", RequireRole(entity.RoleBodeguero), locationHandler.Create)
	locGroup.Post("/bulk", RequireRole(entity.RoleBodeguero), locationHandler.CreateBulk)
	locGroup.Put("/:id", RequireRole(entity.RoleBodeguero), locationHandler.Update)
	locGroup.Delete("/:id", RequireRole(entity.RoleBodeguero), locationHandler.Delete)

	// Taxonomía de niveles (solo admin escribe)
	configGroup := protected.Group("/config")
	configGroup.Get("/location-levels", locationHandler.GetLevels)
	configGroup.Put("/location-levels", RequireRole(), locationHandler.SaveLevels)

	// Ledger de unidades de inventario
	unitGroup := protected.Group("/inventory-units")
	unitHandler := NewInventoryUnitHandler(deps.LedgerUC)
	unitGroup.Get("/", unitHandler.Search)
	unitGroup.Post("/", unitHandler.Create)
	unitGroup.Post("/migrate-legacy", RequireRole(), unitHandler.MigrateLegacy)
	unitGroup.Post("/:id/apply", unitHandler.Apply)
	unitGroup.Post("/:id/correct", RequireRole(entity.RoleBodeguero), unitHandler.Correct)
	unitGroup.Delete("/:id", unitHandler.Discard)

	// Candados consultivos de sesión
	lockGroup := protected.Group("/locks")
	lockHandler := NewLockHandler(deps.LockUC)
	lockGroup.Get("/", lockHandler.ActiveLocks)
	lockGroup.Post("/", lockHandler.Lock)
	lockGroup.Post("/release", lockHandler.Release)
	lockGroup.Post("/:id/force-release", RequireRole(), lockHandler.ForceRelease)

	// Asignaciones producto→ubicación
	assignGroup := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignGroup.Get("/check-conflict", assignmentHandler.CheckConflict)
	assignGroup.Get("/by-product/:item_id", assignmentHandler.ListByItem)
	assignGroup.Get("/by-product/:item_id/movements", assignmentHandler.MovementHistory)
	assignGroup.Post("/", assignmentHandler.Assign)
	assignGroup.Post("/transfer", assignmentHandler.Transfer)
	assignGroup.Delete("/", assignmentHandler.Unassign)
	assignGroup.Delete("/by-product/:item_id", RequireRole(entity.RoleBodeguero), assignmentHandler.UnassignByProduct)
	assignGroup.Delete("/by-location/:location_id", RequireRole(entity.RoleBodeguero), assignmentHandler.UnassignByLocation)

	// Catálogo de productos
	productGroup := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/:id", productHandler.GetByID)
	productGroup.Post("/", RequireRole(entity.RoleBodeguero), productHandler.Create)
}
