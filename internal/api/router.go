package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elevate-digital/bizdesk/internal/api/handler"
	"github.com/elevate-digital/bizdesk/internal/api/middleware"
	"github.com/elevate-digital/bizdesk/internal/core/domain"
	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

// Services groups the use-case implementations the router exposes.
type Services struct {
	Clients    ports.ClientService
	Employees  ports.EmployeeService
	Quotations ports.QuotationService
	Invoices   ports.InvoiceService
	Payments   ports.PaymentService
	Dashboard  ports.DashboardService
	Identity   ports.IdentityProvider
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, db *mongo.Database, rdb *redis.Client, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Identity)
	clientHandler := handler.NewClientHandler(svcs.Clients)
	employeeHandler := handler.NewEmployeeHandler(svcs.Employees)
	quotationHandler := handler.NewQuotationHandler(svcs.Quotations)
	invoiceHandler := handler.NewInvoiceHandler(svcs.Invoices)
	paymentHandler := handler.NewPaymentHandler(svcs.Payments)
	dashboardHandler := handler.NewDashboardHandler(svcs.Dashboard)
	callbackHandler := handler.NewCallbackHandler(svcs.Quotations, svcs.Invoices)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Capability links from outgoing mail; the token in the query string is
	// the sole authorisation.
	e.GET("/callback/quotations", callbackHandler.Quotation)
	e.GET("/callback/invoices", callbackHandler.Invoice)

	// --- Session-protected routes ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))

	clients := v1.Group("/clients")
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// Employee management is restricted to managers.
	employees := v1.Group("/employees", middleware.RBAC(domain.RoleManager))
	employees.GET("", employeeHandler.List)
	employees.POST("", employeeHandler.Create)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	quotations := v1.Group("/quotations")
	quotations.GET("", quotationHandler.List)
	quotations.POST("", quotationHandler.Create)
	quotations.GET("/:id", quotationHandler.Get)
	quotations.PUT("/:id", quotationHandler.UpdateStatus)
	quotations.DELETE("/:id", quotationHandler.Delete)
	quotations.POST("/:id/pdf", quotationHandler.RenderPDF)
	quotations.POST("/:id/send", quotationHandler.Send)

	invoices := v1.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.POST("", invoiceHandler.Create)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.PUT("/:id/status", invoiceHandler.UpdateStatus)
	invoices.DELETE("/:id", invoiceHandler.Delete)
	invoices.POST("/:id/pdf", invoiceHandler.RenderPDF)
	invoices.POST("/:id/send", invoiceHandler.Send)

	payments := v1.Group("/payments")
	payments.GET("", paymentHandler.List)
	payments.GET("/:id", paymentHandler.Get)
	payments.DELETE("/:id", paymentHandler.Delete)

	v1.GET("/dashboard", dashboardHandler.Summary)

	return e
}
