package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/botrelay/internal/audit"
	"github.com/ziadkadry99/botrelay/internal/db"
	"github.com/ziadkadry99/botrelay/internal/gateway"
	"github.com/ziadkadry99/botrelay/internal/server"
	"github.com/ziadkadry99/botrelay/internal/web"
)

var serverPort int

// retentionInterval is how often old exchanges are pruned.
const retentionInterval = time.Hour

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP chat relay",
	Long:  `Starts the botrelay HTTP server: the chat page at /, POST /chat, the /ws/chat websocket and, when audit_db is set, the exchange log API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		logger := newLogger(cfg)

		adapter, err := createAdapterFromConfig(cfg, logger)
		if err != nil {
			return err
		}

		gwOpts := []gateway.Option{
			gateway.WithLogger(logger),
			gateway.WithTimeout(cfg.RequestTimeout),
			gateway.WithAllowedOrigins(cfg.FrontendURL),
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowedOrigins: []string{cfg.FrontendURL},
		}, logger)
		r := srv.Router()

		// Exchange audit log.
		if cfg.AuditDB != "" {
			database, err := db.Open(cfg.AuditDB)
			if err != nil {
				return fmt.Errorf("opening audit database: %w", err)
			}
			defer database.Close()

			auditStore := audit.NewStore(database)
			audit.RegisterRoutes(r, auditStore)
			gwOpts = append(gwOpts, gateway.WithRecorder(auditStore))

			if cfg.AuditRetention > 0 {
				go auditStore.RunRetention(ctx, cfg.AuditRetention, retentionInterval, logger)
			}
		}

		gateway.New(adapter, gwOpts...).RegisterRoutes(r)
		web.RegisterRoutes(r, cfg.StaticDir)

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
		}()

		logger.Info("botrelay starting",
			"version", Version,
			"port", cfg.Port,
			"provider", adapter.ProviderName(),
			"base_url", providerBaseURL(cfg),
			"bot_id", botID(cfg),
			"token", providerCredential(cfg),
			"frontend_url", cfg.FrontendURL,
			"audit_db", cfg.AuditDB,
			"audit_retention", cfg.AuditRetention,
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 3000, "Port to listen on (overrides the config)")
	rootCmd.AddCommand(serverCmd)
}
