// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ariebrainware/pilates-studio/config"
	"github.com/ariebrainware/pilates-studio/docs"
	"github.com/ariebrainware/pilates-studio/endpoint"
	"github.com/ariebrainware/pilates-studio/middleware"
	"github.com/ariebrainware/pilates-studio/model"
	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// @title                      Pilates Studio API
// @version                    1.0
// @description                Scheduling and clinical records for a movement-therapy studio.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	app := &cli.App{
		Name:  "pilates-studio",
		Usage: "studio scheduling and clinical record API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "migrate the schema and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "migrate the schema and seed the class type catalog",
				Action: migrate,
			},
			{
				Name:  "geoip-download",
				Usage: "download a GeoIP2 City database for access log locations",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "MMDB or .mmdb.gz URL", Required: true, EnvVars: []string{"GEOIP_DB_URL"}},
					&cli.StringFlag{Name: "dest", Usage: "destination path", EnvVars: []string{"GEOIP_DB_PATH"}, Value: "data/GeoLite2-City.mmdb"},
				},
				Action: geoipDownload,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase() (*gorm.DB, error) {
	db, err := config.ConnectDatabase()
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := model.Migrate(db); err != nil {
		return nil, fmt.Errorf("error migrating schema: %w", err)
	}
	if err := model.SeedClassTypes(db); err != nil {
		return nil, fmt.Errorf("error seeding class types: %w", err)
	}
	return db, nil
}

func migrate(_ *cli.Context) error {
	config.LoadConfig()
	if _, err := openDatabase(); err != nil {
		return err
	}
	log.Println("Schema is up to date")
	return nil
}

func geoipDownload(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, 5*time.Minute)
	defer cancel()

	path, err := util.DownloadGeoIPWithRequest(ctx, util.DownloadRequest{
		URL:      c.String("url"),
		DestPath: c.String("dest"),
	})
	if err != nil {
		return fmt.Errorf("geoip download failed: %w", err)
	}
	if err := util.ValidateGeoIP(path); err != nil {
		return fmt.Errorf("downloaded file is not a valid GeoIP database: %w", err)
	}
	log.Printf("GeoIP database saved to %s", path)
	return nil
}

func serve(_ *cli.Context) error {
	cfg := config.LoadConfig()

	db, err := openDatabase()
	if err != nil {
		return err
	}

	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	}
	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		log.Printf("GeoIP lookup disabled: %v", err)
	}
	defer util.CloseGeoIP()
	util.SetAccessLoggerDB(db)

	if err := util.RegisterValidators(); err != nil {
		return fmt.Errorf("error registering validators: %w", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("JWTSECRET is empty, bearer authentication is disabled")
	}

	gin.SetMode(cfg.GinMode)
	docs.SwaggerInfo.Title = cfg.AppName

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	endpoint.RegisterRoutes(router, endpoint.RouteConfig{
		Deps: endpoint.Deps{
			Hasher: util.NewBcryptHasher(),
			Files:  util.NewLocalFileStore(cfg.UploadDir),
		},
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.RateLimitConfig{
			Limit:  cfg.RateLimit,
			Window: cfg.RateWindow,
		},
	})

	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	return nil
}
