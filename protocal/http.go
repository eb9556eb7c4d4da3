package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"

	"session-store/configs"
	httpAdapter "session-store/internal/adapters/input/http"
	"session-store/internal/adapters/output/postgres"
	"session-store/internal/application"
	"session-store/internal/domain"
	"session-store/pkg/database_driver/gorm"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// storeHealthLogger struct - logs store lifecycle transitions
type storeHealthLogger struct{}

func (storeHealthLogger) StoreConnected() {
	logrus.Info("Session store connected")
}

func (storeHealthLogger) StoreDisconnected(err error) {
	logrus.Errorln("Session store operation failed: ", err)
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	dbConGorm, err := gorm.ConnectToPostgreSQL(
		configs.GetViper().Postgres.Host,
		configs.GetViper().Postgres.Port,
		configs.GetViper().Postgres.Username,
		configs.GetViper().Postgres.Password,
		configs.GetViper().Postgres.DbName,
		configs.GetViper().Postgres.SSLMode,
	)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			gorm.DisconnectPostgres(dbConGorm.Postgres)
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapter (repository)
	sessionRepo := postgres.NewSessionRepository(dbConGorm.Postgres, configs.GetViper().Session.LimitSubquery)
	// TTL policy: a positive configured value is fixed, zero defers to
	// cookie metadata
	var ttl domain.TTL
	if configs.GetViper().Session.TTL > 0 {
		ttl = domain.FixedTTL(configs.GetViper().Session.TTL)
	}
	// Application service (use case)
	srv := application.NewSessionStoreService(application.Options{
		CleanupLimit: configs.GetViper().Session.CleanupLimit,
		TTL:          ttl,
		Observer:     storeHealthLogger{},
	})
	if err := srv.Connect(sessionRepo); err != nil {
		logrus.Fatalf("Failed to connect session store: %v", err)
	}
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(srv, dbConGorm.Postgres)

	app.Get("/health", hdl.HealthCheck)

	magnolia := app.Group("/v1/api")
	{
		magnolia.Post("/session", hdl.CreateSession)
		magnolia.Get("/session", hdl.ListSessions)
		magnolia.Delete("/session", hdl.DestroySessions)
		magnolia.Get("/session/:id", hdl.GetSession)
		magnolia.Put("/session/:id", hdl.SetSession)
		magnolia.Delete("/session/:id", hdl.DestroySession)
		magnolia.Post("/session/:id/touch", hdl.TouchSession)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}
