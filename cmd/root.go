package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/acme/acmeui/internal/aws"
	"github.com/acme/acmeui/internal/config"
	"github.com/acme/acmeui/internal/config/data"
	"github.com/acme/acmeui/internal/dao"
	"github.com/acme/acmeui/internal/logging"
	"github.com/acme/acmeui/internal/view"
)

const (
	appName    = config.AppName
	appVersion = "0.1.0"
)

var (
	acmeFlags *data.Flags
	rootCmd   = &cobra.Command{
		Use:          appName,
		Short:        "A terminal console for the acme back office",
		Long:         `acmeui browses orders, notifications, tasks, documents and the team chat from the terminal.`,
		RunE:         run,
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	acmeFlags = config.NewFlags()
	initAcmeFlags()
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmds()...)
}

func initAcmeFlags() {
	pf := rootCmd.PersistentFlags()
	pf.Float32VarP(acmeFlags.RefreshRate, "refresh", "r", config.DefaultRefreshRate, "Refresh rate in seconds")
	pf.StringVarP(acmeFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(acmeFlags.LogFile, "logFile", "", "Log file path")
	pf.IntVar(acmeFlags.PageSize, "pageSize", 0, "Rows per page on paged views")

	// Document repository flags
	pf.StringVar(acmeFlags.Profile, "profile", "", "AWS profile backing the document repository")
	pf.StringVar(acmeFlags.Region, "region", "", "AWS region backing the document repository")

	rootCmd.Flags().StringVarP(acmeFlags.Command, "command", "c", "", "Startup view")
	rootCmd.Flags().BoolVar(acmeFlags.Headless, "headless", false, "Print the startup view and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Acme.UI.Headless {
		logging.InitWriter(cmd.ErrOrStderr(), cfg.Acme.Logger.Level)
		return dumpView(cmd.Context(), cmd.OutOrStdout(), cfg, cfg.Acme.DefaultView)
	}

	logFile := config.AppLogFile
	if config.IsStringSet(acmeFlags.LogFile) {
		logFile = *acmeFlags.LogFile
	} else if cfg.Acme.Logger.File != "" {
		logFile = cfg.Acme.Logger.File
	}
	if err := logging.Init(cfg.Acme.Logger.Level, logFile); err != nil {
		return err
	}
	defer logging.Close()
	log := logging.Slog()

	factory, err := newFactory(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	app := view.NewApp(cfg, factory, appVersion, log)
	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run()
}

func loadConfig() (*config.Config, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return nil, fmt.Errorf("failed to initialize log location: %w", err)
	}

	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(acmeFlags); err != nil {
		return nil, fmt.Errorf("failed to refine configuration: %w", err)
	}
	_ = cfg.Save(config.AppConfigFile, false)

	return cfg, nil
}

func newFactory(ctx context.Context, cfg *config.Config, log *slog.Logger) (*dao.ServiceFactory, error) {
	timeout, err := cfg.Acme.GetAPITimeout()
	if err != nil {
		return nil, err
	}

	acme := cfg.Acme
	ep := dao.Endpoints{
		OrderURL:       acme.Services.Order,
		AuditURL:       acme.Services.Audit,
		BPMURL:         acme.Services.BPM,
		ChatURL:        acme.Services.Chat,
		RateLimit:      acme.Services.RateLimit,
		Burst:          acme.Services.Burst,
		Timeout:        timeout,
		Username:       acme.Username,
		CandidateGroup: acme.CandidateGroup,
		Bucket:         acme.Documents.Bucket,
		Prefix:         acme.Documents.Prefix,
	}

	var conn aws.Connection
	if ep.Bucket != "" {
		c := aws.NewAPIClient(aws.ClientConfig{
			Profile: acme.Documents.Profile,
			Region:  acme.Documents.Region,
			Timeout: timeout,
		})
		if ctx == nil {
			ctx = context.Background()
		}
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if c.CheckConnectivity(cctx) {
			log.Info("document repository connected",
				"profile", c.ActiveProfile(),
				"region", c.ActiveRegion(),
				"account", c.AccountID(),
			)
		} else {
			log.Warn("document repository unreachable", "profile", c.ActiveProfile(), "region", c.ActiveRegion())
		}
		cancel()
		conn = c
	}

	return dao.NewFactory(ep, conn, log), nil
}
