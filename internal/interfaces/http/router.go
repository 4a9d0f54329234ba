package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/permission"
	"github.com/jhoicas/marketplace-api/internal/application/subuser"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	SubUserUC     *subuser.UseCase
	SubUserPerms  *permission.SubUserPermissions
	StorePerms    *permission.StorePermissions
	FormatUC      *billing.InvoiceFormatUseCase
	BillUC        *billing.BillUseCase
	BillPDFUC     *billing.BillPDFUseCase
	JWTSecret     string
	EnableMetrics bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.EnableMetrics {
		app.Use(MetricsMiddleware())
		app.Get("/metrics", MetricsHandler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público, con rate limit contra fuerza bruta)
	authGroup := api.Group("/auth", limiter.New(limiter.Config{Max: 20}))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/sub-user/login", authHandler.LoginSubUser)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sub-usuarios. Las rutas estáticas van antes de /:id para que Fiber no
	// las capture como parámetro.
	subUsers := protected.Group("/sub-users")
	subUserHandler := NewSubUserHandler(deps.SubUserUC)
	subUsers.Post("/create", subUserHandler.Create)
	subUsers.Get("/list", subUserHandler.List)
	subUsers.Get("/pending", RequireAdmin(), subUserHandler.ListPending)
	subUsers.Get("/approved", subUserHandler.ListByStatus)
	subUsers.Get("/summary", subUserHandler.Summary)
	subUsers.Post("/approve/:id", RequireAdmin(), subUserHandler.Approve)
	subUsers.Post("/reject/:id", RequireAdmin(), subUserHandler.Reject)
	subUsers.Post("/update/:id", subUserHandler.Update)
	subUsers.Post("/delete/:id", subUserHandler.Delete)

	// Permisos de sub-usuario (la puerta de propiedad vive en el caso de uso)
	subUserPermHandler := NewSubUserPermissionHandler(deps.SubUserPerms)
	subUsers.Get("/:subUserId/menu-permissions", subUserPermHandler.GetAll)
	subUsers.Post("/:subUserId/menu-permissions", subUserPermHandler.SetOne)
	subUsers.Post("/:subUserId/menu-permissions/bulk", subUserPermHandler.SetBulk)

	subUsers.Get("/:id", subUserHandler.Get)

	// Permisos de tienda (solo admin)
	stores := protected.Group("/stores", RequireAdmin())
	storePermHandler := NewStorePermissionHandler(deps.StorePerms)
	stores.Get("/:storeId/menu-permissions", storePermHandler.GetAll)
	stores.Post("/:storeId/menu-permissions", storePermHandler.SetOne)
	stores.Post("/:storeId/menu-permissions/bulk", storePermHandler.SetBulk)

	// Formatos de factura: lecturas para autenticados, mutaciones solo admin
	formats := protected.Group("/invoice-formats")
	formatHandler := NewInvoiceFormatHandler(deps.FormatUC)
	formats.Get("/list", formatHandler.List)
	formats.Get("/assignments", formatHandler.ListAssignments)
	formats.Post("/create", RequireAdmin(), formatHandler.Create)
	formats.Post("/update/:id", RequireAdmin(), formatHandler.Update)
	formats.Post("/delete/:id", RequireAdmin(), formatHandler.Delete)
	formats.Post("/default/:id", RequireAdmin(), formatHandler.SetDefault)
	formats.Get("/store/:storeId", formatHandler.GetStoreFormat)
	formats.Post("/store/:storeId/assign", RequireAdmin(), formatHandler.AssignToStore)
	formats.Get("/vendor/:vendorId", formatHandler.GetVendorFormat)
	formats.Post("/vendor/:vendorId/assign", RequireAdmin(), formatHandler.AssignToVendor)
	formats.Get("/:id", formatHandler.Get)

	// Facturación
	bills := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.BillUC, deps.BillPDFUC)
	bills.Post("/create", billingHandler.Create)
	bills.Get("/store/:storeId", billingHandler.ListByStore)
	bills.Get("/:id/pdf", billingHandler.DownloadPDF)
	bills.Get("/:id", billingHandler.Get)
}
