package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	_ "github.com/lvyanru/chat-history/docs" // swagger docs
	"github.com/lvyanru/chat-history/internal/config"
	"github.com/lvyanru/chat-history/internal/handler"
	infradb "github.com/lvyanru/chat-history/internal/infrastructure/database"
	"github.com/lvyanru/chat-history/internal/router"
	"github.com/lvyanru/chat-history/internal/usecase"
	dbpkg "github.com/lvyanru/chat-history/pkg/database"
	"github.com/lvyanru/chat-history/pkg/logger"
)

//	@title			Chat History API
//	@version		0.1.0
//	@description	Authenticated chat history retrieval service

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Token in format: Bearer {token}

const (
	startupPingTimeout = 10 * time.Second
	shutdownTimeout    = 30 * time.Second
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "chat-history",
	Short:   "Chat history API server",
	Long:    "Serves the most recent turns of a user's chats, oldest first, behind JWT auth.",
	Version: version,
	// 错误已经写进日志，不再打印 usage
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appLogger, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	hlog.SetLogger(logger.NewHertzSlogAdapter(appLogger))
	appLogger.Info("chat history server starting", "version", version, "config", cfgFile)

	dbClient := dbpkg.New(cfg.Database, appLogger)
	defer dbClient.Close() // Close logs its own outcome

	h, err := newServer(cfg, dbClient, appLogger)
	if err != nil {
		appLogger.Error("failed to build server", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := make(chan error, 1)
	go func() { runErr <- h.Run() }()
	appLogger.Info("server started", "address", cfg.GetServerAddr(), "mode", cfg.Server.Mode)

	select {
	case err := <-runErr:
		appLogger.Error("server run failed", "error", err)
		return err
	case <-ctx.Done():
	}

	appLogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", "error", err)
		return err
	}
	appLogger.Info("server stopped gracefully")
	return nil
}

// newServer wires storage, usecases and handlers into a Hertz server.
// The database is only pinged here; a failure is retried by the first request.
func newServer(cfg *config.Config, dbClient *dbpkg.Client, log *slog.Logger) (*server.Hertz, error) {
	pingCtx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	if err := dbClient.EnsureReady(pingCtx); err != nil {
		log.Warn("database not ready at startup, will retry on first request", "error", err)
	}
	cancel()

	users := usecase.NewUserUsecase(infradb.NewUserRepository(dbClient), log)
	userHandler, err := handler.NewUserHandler(users, cfg.JWT, log)
	if err != nil {
		return nil, err
	}

	history := usecase.NewHistoryUsecase(dbClient, infradb.NewHistoryRepository(dbClient), cfg.History.MaxLimit, log)

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
	)
	router.Setup(h.Engine, log, userHandler, handler.NewHistoryHandler(history), handler.NewHealthHandler(dbClient))
	return h, nil
}
