package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/noah-isme/studydash/api/swagger"
	"github.com/noah-isme/studydash/internal/handler"
	"github.com/noah-isme/studydash/internal/service"
	"github.com/noah-isme/studydash/pkg/config"
	"github.com/noah-isme/studydash/pkg/storage"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "studydash",
		Short:        "Academic progress dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newKPIsCmd(), newExportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newKPIsCmd() *cobra.Command {
	var programID int64
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Print the KPI header of a program",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			lines, err := a.dashboard.SummaryLines(ctx, a.programID(programID))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintf(out, "%s: %s\n", line.Label, line.Value)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&programID, "program", 0, "program id (default: active program)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		programID int64
		format    string
		outDir    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard report to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			store, err := storage.NewLocalStorage(outDir)
			if err != nil {
				return err
			}
			path, err := a.exports.Save(ctx, store, a.programID(programID), exportFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().Int64Var(&programID, "program", 0, "program id (default: active program)")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or pdf")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}

// runServe blocks until ctx is cancelled, then drains in-flight requests.
func runServe(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterConfig{
		APIPrefix:      a.cfg.APIPrefix,
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		EnableDocs:     a.cfg.Env != config.EnvProduction,
		Logger:         a.log,
		Metrics:        a.metrics,
	}, handler.Handlers{
		Metrics:     handler.NewMetricsHandler(a.metrics, a.db),
		Programs:    handler.NewProgramHandler(a.programs, a.program.PersonID),
		Modules:     handler.NewModuleHandler(a.modules),
		Enrollments: handler.NewEnrollmentHandler(a.enrollments),
		Dashboard:   handler.NewDashboardHandler(a.dashboard),
		Export:      handler.NewExportHandler(a.exports),
	})

	srv := &http.Server{Addr: a.cfg.Addr(), Handler: router}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", a.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
