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

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the portfolio page and contact endpoints",
	Long: `The serve command renders the page from the data directory on every
request, serves the data files under /data/ and static assets under
/static/, and accepts contact submissions on /api/contact and /contact.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = runServe
}

func runServe(cmd *cobra.Command, _ []string) error {
	gin.SetMode(appConfig.Mode)

	flush, err := initSentry()
	if err != nil {
		return err
	}
	defer flush()

	site, err := newSite()
	if err != nil {
		return err
	}

	mailer, err := newMailer()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		DataDir:   appConfig.DataDir,
		StaticDir: appConfig.StaticDir,
	}, site, mailer)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              appConfig.ListenAddr(),
		Handler:           sentryhttp.New(sentryhttp.Options{}).Handle(srv.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("portfolio listening", zap.String("addr", httpSrv.Addr), zap.String("mode", gin.Mode()))

		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return httpSrv.Shutdown(shutdownCtx)
}

func initSentry() (func(), error) {
	if appConfig.Sentry.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         appConfig.Sentry.DSN,
		Environment: appConfig.Sentry.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry.Init: %w", err)
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}
