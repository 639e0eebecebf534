package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"revenue-reconciliation-backend/internal/config"
	"revenue-reconciliation-backend/internal/logging"
	"revenue-reconciliation-backend/internal/repository"
	"revenue-reconciliation-backend/internal/routes"
	"revenue-reconciliation-backend/internal/services/ingest"
	service "revenue-reconciliation-backend/internal/services/reconciliation"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the chunk dispatcher",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "migrate the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := config.InitDB(settings)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	chunks := repository.NewChunkTaskRepository(db)
	reconService := service.NewReconciliationService(
		repository.NewAuditRepository(db),
		chunks,
		repository.NewAnomalyRepository(db),
		repository.NewSettingsRepository(db),
		ingest.NewFileSource(),
		service.Options{
			ChunkSize:    settings.ChunkSize,
			StaleAfter:   settings.StaleAfter,
			AuditTimeout: settings.AuditTimeout,
		},
	)

	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	dispatcher := service.NewDispatcher(reconService, settings.DispatchBuffer)
	reconService.SetTrigger(dispatcher)
	dispatcher.Start(dispatchCtx)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     settings.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, reconService)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stopDispatch()
		dispatcher.Wait()
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	stopDispatch()
	dispatcher.Wait()
	return err
}
