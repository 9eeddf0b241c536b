package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gksrikar/portfolio/internal/config"
	"github.com/gksrikar/portfolio/internal/contact"
	"github.com/gksrikar/portfolio/internal/content"
	"github.com/gksrikar/portfolio/internal/logger"
	"github.com/gksrikar/portfolio/internal/render"
	"github.com/gksrikar/portfolio/internal/server"
)

const contactAction = "/contact"

var (
	cfgFile   string
	appConfig *config.Config
	log       = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site",
	Long: `portfolio renders the JSON files in the data directory into a single
page, serves it together with the contact endpoints, and can export the
page as static files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
}

func initialize() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	appConfig = cfg
	log = l

	return nil
}

func newSite() (*server.Site, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	return &server.Site{
		Renderer:      renderer,
		Source:        content.NewDirSource(os.DirFS(appConfig.DataDir)),
		Logger:        log,
		FallbackEmail: appConfig.Contact.FallbackEmail,
		ContactAction: contactAction,
		Now:           time.Now,
	}, nil
}

// newMailer delivers over SMTP when credentials are configured and otherwise
// only acknowledges submissions.
func newMailer() (contact.Mailer, error) {
	mailer, err := contact.NewSMTPMailer(appConfig.SMTPSettings(), log)
	if errors.Is(err, contact.ErrNotConfigured) {
		log.Info("SMTP not configured, contact submissions are acknowledged without delivery")

		return contact.NewLogMailer(log), nil
	}
	if err != nil {
		return nil, err
	}

	return mailer, nil
}
