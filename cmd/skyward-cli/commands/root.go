package commands

import (
	"context"
	"fmt"
	"time"

	"skyward-backend/lib/configutil"
	"skyward-backend/lib/gradebook"
	"skyward-backend/lib/restyutil"
	"skyward-backend/lib/scrapers/skyward/core"
	"skyward-backend/lib/scrapers/skyward/view"
	"skyward-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	// Service is the district's service name, ex. "wseduoakparkrfil".
	Service string `json:"service"`
	// BaseUrl overrides the url derived from Service.
	BaseUrl           string  `json:"base_url"`
	Username          string  `json:"username"`
	Password          string  `json:"password"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	SessionAttempts   int     `json:"session_attempts"`
	Debug             bool    `json:"debug"`
}

var defaultConfig = Config{
	TimeoutSeconds:    60,
	RequestsPerSecond: 2,
	SessionAttempts:   8,
}

var config Config

var configPath *string
var debug *bool
var dumpDir *string

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "skyward.json5", "The config file to read credentials from.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
	dumpDir = rootCmd.PersistentFlags().String("dump", "", "Write every request and response to this directory.")
}

var rootCmd = &cobra.Command{
	Use:           "skyward-cli",
	Short:         "skyward-cli is a CLI for logging into skyward and reading grades.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configutil.ReadConfigWithDefaults(*configPath, defaultConfig)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = *debug
		}
		config = cfg

		telemetry.InitSlog(config.Debug)
		return nil
	},
}

// ExecuteContext runs the command named by os.Args, errors are left to the
// caller to report.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func baseUrl() (string, error) {
	if config.BaseUrl != "" {
		return config.BaseUrl, nil
	}
	if config.Service != "" {
		return core.ServiceUrl(config.Service), nil
	}
	return "", fmt.Errorf("either service or base_url must be set in %s", *configPath)
}

func newClient() (*core.Client, error) {
	url, err := baseUrl()
	if err != nil {
		return nil, err
	}

	opts := core.TransportOptions{
		RequestsPerSecond: config.RequestsPerSecond,
	}
	if *dumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(*dumpDir)
		if err != nil {
			return nil, err
		}
		opts.Dump = output
	}

	return core.NewClient(core.ClientOptions{
		BaseUrl:          url,
		TransportOptions: opts,
		Retry: core.RetryPolicy{
			Timeout:         time.Duration(config.TimeoutSeconds) * time.Second,
			SessionAttempts: config.SessionAttempts,
		},
	})
}

func authenticate(ctx context.Context) (*core.Client, core.SessionParams, error) {
	if config.Username == "" || config.Password == "" {
		return nil, core.SessionParams{}, fmt.Errorf("username and password must be set in %s", *configPath)
	}

	client, err := newClient()
	if err != nil {
		return nil, core.SessionParams{}, err
	}
	session, err := core.NewHandshake(client).Authenticate(ctx, config.Username, config.Password)
	if err != nil {
		return nil, core.SessionParams{}, err
	}
	return client, session, nil
}

func retrieve(ctx context.Context) ([]gradebook.ClassGradeSet, error) {
	client, session, err := authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return view.NewRetriever(client, view.NoopRenderer{}).Retrieve(ctx, session)
}
