package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KalyaKKK/tugas5-jda/internal/config"
	httpAPI "github.com/KalyaKKK/tugas5-jda/internal/http"
	"github.com/KalyaKKK/tugas5-jda/internal/http/controller"
	"github.com/KalyaKKK/tugas5-jda/internal/logger"
	"github.com/KalyaKKK/tugas5-jda/internal/metrics"
	"github.com/KalyaKKK/tugas5-jda/internal/repository/sql"
	"github.com/KalyaKKK/tugas5-jda/internal/service"
	sqspkg "github.com/KalyaKKK/tugas5-jda/internal/sqs"
)

const outboxInterval = 2 * time.Second

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	// Stores
	productRepository := sql.NewProductRepository(db)
	eventRepository := sql.NewEventRepository(db)
	catalogTx := sql.NewCatalogTxRunner(db)

	// SQS publisher for product change notifications
	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	productService := service.NewProductService(productRepository, catalogTx)

	// Deliver pending outbox events in the background
	outboxWorker := service.NewOutboxWorker(eventRepository, sqsPublisher, outboxInterval)
	go outboxWorker.Start(ctx)

	// Start HTTP server
	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	ctr := controller.New()
	productCtr := controller.NewProductController(productService)
	httpServer := httpAPI.InitRouter(gin.New(), ctr, productCtr)

	go func() {
		if err := httpServer.Run(":" + conf.HTTPServer.Port); err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	outboxWorker.Stop()
	cancel()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
