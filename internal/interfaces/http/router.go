package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/messaging"
	"github.com/jhoicas/estoque-api/pkg/jwt"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PostMovement  *inventory.PostMovementUseCase
	Ledger        *inventory.LedgerQueryUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ProductUC     *usecase.ProductUseCase
	ProductTypeUC *usecase.ProductTypeUseCase
	ReportUC      *usecase.ReportUseCase
	Hub           *messaging.Hub
	DB            Pinger
	Storage       string
	JWTSecret     string
	JWTIssuer     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log.Component("http")}

	app.Get("/health", health(deps.DB, deps.Storage))

	if deps.Hub != nil {
		app.Use("/ws", requireUpgrade)
		app.Get("/ws/estoque", stockFeed(deps.Hub))
	}

	// Con JWT_SECRET vacío /api queda abierto y las restricciones de rol no aplican.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.JWTSecret != "" {
		adminOnly = RequireRole(jwt.RoleAdmin)
	}

	movementHandler := NewMovementHandler(deps.PostMovement, deps.Ledger, errs)
	movements := api.Group("/movimentos")
	movements.Post("/", movementHandler.Post)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)

	productHandler := NewProductHandler(deps.ProductUC, errs)
	products := api.Group("/produtos")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	typeHandler := NewProductTypeHandler(deps.ProductTypeUC, errs)
	types := api.Group("/tipos-produto")
	types.Post("/", adminOnly, typeHandler.Create)
	types.Get("/", typeHandler.List)
	types.Get("/:id", typeHandler.GetByID)
	types.Put("/:id", adminOnly, typeHandler.Update)
	types.Delete("/:id", adminOnly, typeHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC, deps.Replenishment, errs)
	reports := api.Group("/relatorios")
	reports.Get("/produtos-por-tipo", reportHandler.ProductsByType)
	reports.Get("/lucro-por-produto", reportHandler.ProfitByProduct)
	reports.Get("/lucro-por-produto/pdf", reportHandler.ProfitByProductPDF)
	reports.Get("/reposicao", reportHandler.Replenishment)
}
