package routes

import (
	"fmt"
	"net/http"

	"cyberdesk-backend/config"
	"cyberdesk-backend/controllers"
	"cyberdesk-backend/services"
	"cyberdesk-backend/storage"
	"cyberdesk-backend/templates"
	"cyberdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies is everything the router hands to its controllers. Export
// may be nil when the spreadsheet mirror is disabled.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Gate     *utils.SessionGate
	Files    *storage.FileStore
	Export   *services.ExportService
	Notifier services.BillNotifier
}

func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.PerformanceLogger("/healthz"))
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = 8 << 20

	var mirror services.MirrorRebuilder
	if deps.Export != nil {
		mirror = deps.Export
	}
	r.Use(controllers.ViewDefaults(deps.Export != nil))
	r.Use(deps.Gate.LoadSession())

	customerService := services.NewCustomerService(deps.DB, deps.Files, mirror)
	activityService := services.NewActivityService(deps.DB)
	documentService := services.NewDocumentService(deps.DB, deps.Files)
	billService := services.NewBillService(deps.DB, deps.Notifier)
	dashboardService := services.NewDashboardService(deps.DB)

	authController := controllers.NewAuthController(deps.Gate)
	dashboardController := controllers.NewDashboardController(customerService, dashboardService)
	customerController := controllers.NewCustomerController(customerService, activityService, documentService, billService)
	documentController := controllers.NewDocumentController(documentService, deps.Config.MaxUploadSize)
	billingController := controllers.NewBillingController(customerService, billService)
	exportController := controllers.NewExportController(deps.Export)
	healthController := controllers.NewHealthController(deps.DB)

	r.GET("/", authController.LoginPage)
	r.POST("/login", authController.Login)
	r.GET("/logout", authController.Logout)
	r.GET("/healthz", healthController.Check)

	admin := r.Group("/")
	admin.Use(deps.Gate.AdminRequired())
	{
		admin.GET("/dashboard", dashboardController.Show)

		customers := admin.Group("/customers")
		{
			customers.GET("/new", customerController.New)
			customers.POST("", customerController.Create)
			customers.GET("/:id", customerController.Profile)
			customers.GET("/:id/edit", customerController.Edit)
			customers.POST("/:id", customerController.Update)
			customers.POST("/:id/delete", customerController.Delete)
			customers.POST("/:id/history", customerController.AddHistory)
			customers.POST("/:id/documents", documentController.Upload)
			customers.GET("/:id/bills/new", billingController.New)
			customers.POST("/:id/bills", billingController.Create)
		}

		admin.GET("/documents/:id", documentController.Download)
		admin.GET("/bills/:id", billingController.Print)
		admin.GET("/export", exportController.Download)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "Page not found")
	})

	return r, nil
}
