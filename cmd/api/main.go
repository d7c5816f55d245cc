package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mohramadan911/watsonx-document-processor/internal/application"
	appclassify "github.com/mohramadan911/watsonx-document-processor/internal/application/classify"
	appdocs "github.com/mohramadan911/watsonx-document-processor/internal/application/docs"
	appmonitor "github.com/mohramadan911/watsonx-document-processor/internal/application/monitor"
	appworkflows "github.com/mohramadan911/watsonx-document-processor/internal/application/workflows"
	"github.com/mohramadan911/watsonx-document-processor/internal/config"
	domaudit "github.com/mohramadan911/watsonx-document-processor/internal/domain/audit"
	domworkflows "github.com/mohramadan911/watsonx-document-processor/internal/domain/workflows"
	openaiclient "github.com/mohramadan911/watsonx-document-processor/internal/infra/ai/openai"
	mysqlp "github.com/mohramadan911/watsonx-document-processor/internal/infra/db/mysql"
	postgresp "github.com/mohramadan911/watsonx-document-processor/internal/infra/db/postgres"
	"github.com/mohramadan911/watsonx-document-processor/internal/infra/extract"
	"github.com/mohramadan911/watsonx-document-processor/internal/infra/httpserver"
	"github.com/mohramadan911/watsonx-document-processor/internal/infra/mail"
	minioStore "github.com/mohramadan911/watsonx-document-processor/internal/infra/storage"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect DB, pilih driver sesuai config
	var db *sql.DB
	var audit domaudit.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		audit = postgresp.NewClassificationRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		audit = mysqlp.NewClassificationRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}
	if cfg.Minio.BucketName != "" {
		if err := store.EnsureBucket(ctx, cfg.Minio.BucketName); err != nil {
			log.Fatalf("minio bucket error: %v", err)
		}
	}

	// init model client
	model := openaiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// init mailer, optional
	var mailer domworkflows.Mailer
	if cfg.Graph.ClientID != "" {
		mailer = mail.NewGraphMailer(
			cfg.Graph.ClientID,
			cfg.Graph.ClientSecret,
			cfg.Graph.TenantID,
			cfg.Graph.UserEmail,
		)
	}

	clock := application.SystemClock{}
	sched := appworkflows.NewScheduler(mailer, clock)

	// init services
	classifier := appclassify.NewService(model)
	docsSvc := &appdocs.Service{
		Classifier: classifier,
		Planner:    &appdocs.Planner{},
		Organizer:  &appdocs.Organizer{Store: store},
		Store:      store,
		Extractor:  &extract.PDFExtractor{},
		Audit:      audit,
		Clock:      clock,
	}

	// init monitor
	mon := appmonitor.New(docsSvc, store, model, sched, clock, appmonitor.Options{
		Interval:         time.Duration(cfg.Monitor.IntervalSeconds) * time.Second,
		CriticalInterval: time.Duration(cfg.Monitor.CriticalIntervalSeconds) * time.Second,
		ReviewLeadDays:   cfg.Monitor.ReviewLeadDays,
		Extensions:       cfg.Monitor.Extensions,
		ReviewRecipients: cfg.Monitor.ReviewRecipients,
	})
	if len(cfg.Monitor.Containers) > 0 {
		mon.Start(cfg.Monitor.Containers)
		log.Printf("monitor started containers=%v interval=%ds",
			cfg.Monitor.Containers, cfg.Monitor.IntervalSeconds)
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(docsSvc, mon, sched, store, audit, db, cfg.Minio.BucketName))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")

	mon.Stop()

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
