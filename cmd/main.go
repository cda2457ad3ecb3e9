package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/craftfolio/portfolio-api/internal/actor/auth"
	"github.com/craftfolio/portfolio-api/internal/actor/blog"
	"github.com/craftfolio/portfolio-api/internal/actor/image"
	"github.com/craftfolio/portfolio-api/internal/actor/project"
	"github.com/craftfolio/portfolio-api/internal/actor/session"
	"github.com/craftfolio/portfolio-api/internal/actor/stack"
	"github.com/craftfolio/portfolio-api/internal/api"
	"github.com/craftfolio/portfolio-api/internal/config"
	"github.com/craftfolio/portfolio-api/internal/logger"
	"github.com/craftfolio/portfolio-api/internal/metrics"
	"github.com/craftfolio/portfolio-api/internal/repository/postgres"
	storage "github.com/craftfolio/portfolio-api/internal/storage/minio"
	"github.com/craftfolio/portfolio-api/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpiryHour)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	authMailbox := make(chan auth.Message, cfg.MailboxSize)
	sessionMailbox := make(chan session.Message, cfg.MailboxSize)
	stackMailbox := make(chan stack.Message, cfg.MailboxSize)
	blogMailbox := make(chan blog.Message, cfg.MailboxSize)
	projectMailbox := make(chan project.Message, cfg.MailboxSize)
	imageMailbox := make(chan image.Message, cfg.MailboxSize)

	metrics.ObserveMailbox("auth", authMailbox)
	metrics.ObserveMailbox("session", sessionMailbox)
	metrics.ObserveMailbox("stack", stackMailbox)
	metrics.ObserveMailbox("blog", blogMailbox)
	metrics.ObserveMailbox("project", projectMailbox)
	metrics.ObserveMailbox("image", imageMailbox)

	// Actors must not die with the signal context: during shutdown the
	// server is still draining requests whose messages are already
	// queued. Closing the mailboxes is what stops them.
	actorCtx := context.WithoutCancel(ctx)

	var actors sync.WaitGroup
	runActor(&actors, func() { auth.New(db.Pool, logger).Run(actorCtx, authMailbox) })
	runActor(&actors, func() { session.New(refreshTokenRepo, tokenManager, logger).Run(actorCtx, sessionMailbox) })
	runActor(&actors, func() { stack.New(db.Pool, logger).Run(actorCtx, stackMailbox) })
	runActor(&actors, func() { blog.New(db.Pool, logger).Run(actorCtx, blogMailbox) })
	runActor(&actors, func() { project.New(db.Pool, logger).Run(actorCtx, projectMailbox) })
	runActor(&actors, func() { image.New(storageClient, logger).Run(actorCtx, imageMailbox) })

	gateway := api.New(api.Actors{
		Auth:    authMailbox,
		Session: sessionMailbox,
		Stack:   stackMailbox,
		Blog:    blogMailbox,
		Project: projectMailbox,
		Image:   imageMailbox,
	}, tokenManager, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler: api.NewRouter(gateway, db),
	}

	var servers sync.WaitGroup
	servers.Add(1)
	go func() {
		defer servers.Done()
		logger.Info("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}
	servers.Wait()

	// No new sends can happen once the server has stopped; closing the
	// mailboxes lets each actor drain and exit.
	close(authMailbox)
	close(sessionMailbox)
	close(stackMailbox)
	close(blogMailbox)
	close(projectMailbox)
	close(imageMailbox)
	actors.Wait()

	logger.Info("shutdown complete")
}

func runActor(wg *sync.WaitGroup, run func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		run()
	}()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
