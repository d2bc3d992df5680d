package protocal

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mock-interview/configs"
	httpAdapter "mock-interview/internal/adapters/input/http"
	"mock-interview/internal/adapters/output/cache"
	"mock-interview/internal/adapters/output/llm"
	"mock-interview/internal/adapters/output/memory"
	openaiAdapter "mock-interview/internal/adapters/output/openai"
	"mock-interview/internal/adapters/output/postgres"
	"mock-interview/internal/adapters/output/sandbox"
	"mock-interview/internal/application"
	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"
	"mock-interview/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// storage bundles the session store and question bank selected by configuration
type storage struct {
	sessions output.SessionStore
	bank     output.QuestionBank
	ping     httpAdapter.PingFunc
	close    func()
}

func setupLogger(app configs.App) {
	logrus.SetOutput(os.Stdout)
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if app.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func newStorage(cfg *configs.Config) (*storage, error) {
	seed, err := memory.LoadQuestionBank(cfg.Storage.QuestionBankFile)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Storage.Driver) {
	case "", "memory":
		return &storage{
			sessions: memory.NewMemorySessionStore(),
			bank:     seed,
			close:    func() {},
		}, nil
	case "postgres":
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.DbName,
			cfg.Postgres.SSLMode,
			gorm.Pool{MaxOpenConns: cfg.Postgres.MaxOpenConns, MaxIdleConns: cfg.Postgres.MaxIdleConns},
			cfg.App.Debug,
		)
		if err != nil {
			return nil, err
		}
		sessions, err := postgres.NewSessionStore(dbConGorm.Postgres)
		if err != nil {
			return nil, err
		}
		bank, err := postgres.NewQuestionBank(dbConGorm.Postgres, seed.Questions())
		if err != nil {
			return nil, err
		}
		return &storage{
			sessions: sessions,
			bank:     bank,
			ping: func(ctx context.Context) error {
				sqlDB, err := dbConGorm.Postgres.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			close: func() { gorm.DisconnectPostgres(dbConGorm.Postgres) },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func newTextGenerator(cfg configs.LLM) (output.TextGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return openaiAdapter.NewClientAdapter(cfg)
	case "", "compatible":
		return llm.NewCompatibleClientAdapter(cfg)
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()
	setupLogger(conf.App)
	logrus.Info(conf.Env)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(httpAdapter.ResponseBody{
				Status: httpAdapter.Status{Code: code, Message: []string{err.Error()}},
			})
		},
	})
	app.Use(recover.New())
	app.Use(httpAdapter.RequestLogger(logrus.StandardLogger()))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	store, err := newStorage(conf)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			err := app.ShutdownWithTimeout(10 * time.Second)
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
			store.close()
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapters
	generator, err := newTextGenerator(conf.LLM)
	if err != nil {
		logrus.Fatalf("Failed to create LLM client: %v", err)
	}
	ttl := time.Duration(conf.Cache.TTLMinutes) * time.Minute
	cleanup := time.Duration(conf.Cache.CleanupMinutes) * time.Minute
	questions := cache.NewQuestionCache(ttl, cleanup)
	feedback := cache.NewFeedbackCache(ttl, cleanup)
	interpreter := sandbox.NewGojaInterpreter(conf.Sandbox.MaxCallStack)

	// Application services (use cases)
	orchestrator := application.NewOrchestrator(generator, store.bank, questions, feedback)
	engine := application.NewCodeEngine(interpreter, time.Duration(conf.Sandbox.TimeoutMs)*time.Millisecond)
	analyzer := application.NewSpeechAnalyzer()
	interviews := application.NewInterviewService(store.sessions, orchestrator, domain.SystemClock{})

	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(orchestrator, engine, analyzer, interviews, store.ping)
	app.Get("/swagger/*", swagger.HandlerDefault) // default
	hdl.Register(app)

	logrus.Println("Listerning on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}
