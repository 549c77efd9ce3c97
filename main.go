package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cyberdesk-backend/config"
	"cyberdesk-backend/models"
	"cyberdesk-backend/routes"
	"cyberdesk-backend/services"
	"cyberdesk-backend/storage"
	"cyberdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	hashPassword := flag.String("hash-password", "", "Print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		if err := printPasswordHash(os.Stdout, *hashPassword); err != nil {
			log.Fatalf("hash password: %v", err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("database: %v", err)
	}

	secret := cfg.SecretKey
	if secret == "" {
		log.Println("SECRET_KEY not set, using a random key; sessions end on restart")
		secret = utils.GenerateJWTSecret()
	}
	gate := utils.NewSessionGate(utils.Credentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, secret, cfg.SessionTTL, cfg.SecureCookies)

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	var export *services.ExportService
	if cfg.ExportEnabled {
		export = services.NewExportService(db, cfg.ExportPath)
		export.RebuildQuietly(context.Background())

		if cfg.ExportSchedule != "" {
			scheduler, err := services.StartExportScheduler(cfg.ExportSchedule, export)
			if err != nil {
				log.Fatalf("export: %v", err)
			}
			defer scheduler.Stop()
		}
	}

	var notifier services.BillNotifier = services.NoopNotifier{}
	if cfg.TwilioEnabled() {
		notifier = services.NewSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		log.Println("[SMS] bill receipts enabled")
	}

	r, err := routes.SetupRouter(routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Gate:     gate,
		Files:    files,
		Export:   export,
		Notifier: notifier,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	printRoutes(r)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

func printPasswordHash(w io.Writer, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hash)
	return err
}
