package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lgc202/go-paapi/config"
	"github.com/lgc202/go-paapi/httpx"
	"github.com/lgc202/go-paapi/internal/logging"
	"github.com/lgc202/go-paapi/paapi"
	"github.com/lgc202/go-paapi/version"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath  string
	marketplace string
	output      string
	logLevel    string

	settings config.Settings
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	o := &globalOptions{}
	cmd := &cobra.Command{
		Use:          "paapi",
		Short:        "Query the Product Advertising API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (yaml, json or toml)")
	f.StringVar(&o.marketplace, "marketplace", "", "marketplace code, overrides the config")
	f.StringVarP(&o.output, "output", "o", "text", "output format (text, json, yaml; version also takes short)")
	f.StringVar(&o.logLevel, "log-level", "", "log level, overrides the config")

	cmd.AddCommand(
		newSearchCmd(o),
		newBrandsCmd(o),
		newLookupCmd(o),
		newCrawlCmd(o),
		newVersionCmd(o),
	)
	return cmd
}

func (o *globalOptions) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if cmd.Flags().Changed("marketplace") {
		os.Setenv(config.EnvPrefix+"_MARKETPLACE", o.marketplace)
	}
	if cmd.Flags().Changed("log-level") {
		os.Setenv(config.EnvPrefix+"_LOG_LEVEL", o.logLevel)
	}
	cfg, err := config.LoadSettings(o.configPath)
	if err != nil {
		return err
	}
	o.settings = cfg.Get()

	o.logger, err = logging.Init(o.settings.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	switch o.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
	return nil
}

// client builds a service client from the loaded settings. extra options
// are applied after the configured ones.
func (o *globalOptions) client(extra ...httpx.Option) (*paapi.Client, error) {
	s := o.settings
	opts := append([]httpx.Option{
		httpx.WithUserAgent(version.UserAgent()),
		httpx.WithTimeout(s.HTTP.Timeout),
		httpx.WithMaxAttempts(s.HTTP.MaxAttempts),
	}, extra...)
	hc, err := httpx.New(opts...)
	if err != nil {
		return nil, err
	}
	return paapi.NewClient(
		paapi.Credentials{
			AccessKey:    s.AccessKeyID,
			SecretKey:    s.SecretAccessKey,
			AssociateTag: s.AssociateTag,
		},
		paapi.WithMarketplace(s.Marketplace),
		paapi.WithHTTPClient(hc),
		paapi.WithRateLimit(s.HTTP.RateLimit),
		paapi.WithLogger(o.logger),
	)
}
