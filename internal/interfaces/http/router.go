package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/notification"
	"github.com/jhoicas/Farmacia-api/internal/application/sales"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	CustomerUC     *usecase.CustomerUseCase
	SettingUC      *usecase.SettingUseCase
	UserUC         *usecase.UserUseCase
	NotificationUC *usecase.NotificationUseCase
	SaleUC         *sales.SaleUseCase
	ReceiptUC      *sales.ReceiptUseCase
	ReceiveStock   *inventory.ReceiveStockUseCase
	AuditUC        *audit.StockAuditUseCase
	Engine         *notification.Engine
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/refund", saleHandler.Refund)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Purchases / recepción de stock (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.ReceiveStock)
	purchases.Post("/", purchaseHandler.Receive)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/reorder-suggestions", purchaseHandler.ReorderSuggestions)
	purchases.Post("/import-csv", purchaseHandler.ImportCSV)
	purchases.Post("/import-csv/raw", purchaseHandler.ImportCSVRaw)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Stock audits (protegido)
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", auditHandler.Start)
	audits.Get("/", auditHandler.List)
	audits.Get("/:id", auditHandler.GetByID)
	audits.Put("/:id", auditHandler.SaveDraft)
	audits.Post("/:id/complete", auditHandler.Complete)
	audits.Get("/:id/export", auditHandler.ExportCSV)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC, deps.Engine)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread", notificationHandler.Unread)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/run-check", notificationHandler.RunCheck)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Settings (protegido)
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", settingHandler.Get)
	settings.Put("/", settingHandler.Update)

	// Panel de usuarios (protegido, solo admin)
	adminUsers := protected.Group("/admin/users", RequireRole("admin"))
	userHandler := NewUserHandler(deps.UserUC)
	adminUsers.Post("/", userHandler.Create)
	adminUsers.Get("/", userHandler.List)
	adminUsers.Put("/:id", userHandler.Update)
	adminUsers.Delete("/:id", userHandler.Delete)
}
