package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/gamepanel/config"
	"github.com/s0up4200/gamepanel/credentials"
	"github.com/s0up4200/gamepanel/gamepanel"
	"github.com/s0up4200/gamepanel/output"
)

var (
	version   = "dev"
	commit    = ""
	buildTime = "unknown"
)

// SetVersion records the build information shown by the version command
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
}

// app holds the state of one command invocation
type app struct {
	// Command flags
	cfgFile  string
	hostname string
	token    string
	format   string
	query    string
	debug    bool

	cfg    *config.Config
	logger zerolog.Logger
	stdin  io.Reader

	// replaceable in tests
	newAPI    func() (gamepanel.API, error)
	openStore func() (*credentials.Store, error)
}

func newApp() *app {
	a := &app{
		logger: zerolog.Nop(),
		stdin:  os.Stdin,
	}
	a.newAPI = a.client
	a.openStore = func() (*credentials.Store, error) {
		return credentials.Open(a.cfg.Keyring)
	}
	return a
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := newRootCmd(newApp()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gamepanel",
		Short: "Manage users and game servers on a game panel",
		Long: `gamepanel is a CLI for the REST API of a game server panel.

It reads, creates, updates and deletes panel users and game servers. Error
responses from the panel are printed like any other response.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initializeApp,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&a.hostname, "hostname", "", "panel hostname, e.g. panel.example.com")
	flags.StringVar(&a.token, "token", "", "personal access token (default: config, then keyring)")
	flags.StringVarP(&a.format, "output", "o", "", "output format: json or table")
	flags.StringVarP(&a.query, "query", "q", "", "jq expression applied to the output")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newUserCmd(a))
	rootCmd.AddCommand(newServerCmd(a))
	rootCmd.AddCommand(newAuthCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// initializeApp loads the configuration and logger
func (a *app) initializeApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	if a.debug {
		a.cfg.Logging.Level = "debug"
	}
	if a.format != "" {
		if a.format != output.FormatJSON && a.format != output.FormatTable {
			return fmt.Errorf("invalid output format: %s (must be 'json' or 'table')", a.format)
		}
		a.cfg.Output.Format = a.format
	}
	if a.hostname != "" {
		a.cfg.Panel.Hostname = a.hostname
	}

	a.logger = setupLogger(a.cfg.Logging, cmd.ErrOrStderr())
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(console).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// client creates a panel client from the loaded configuration
func (a *app) client() (gamepanel.API, error) {
	hostname := strings.TrimSpace(a.cfg.Panel.Hostname)
	if hostname == "" {
		return nil, errors.New("no panel hostname configured (use --hostname, panel.hostname or GAMEPANEL_PANEL_HOSTNAME)")
	}

	token, _, err := a.resolveToken(hostname)
	if err != nil {
		return nil, err
	}

	client, err := gamepanel.NewClient(hostname, token, a.logger,
		gamepanel.WithTimeout(a.cfg.HTTP.Timeout),
		gamepanel.WithUserAgent(a.cfg.HTTP.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create panel client: %w", err)
	}
	return client, nil
}

// Token sources reported by auth status
const (
	tokenSourceFlag    = "flag"
	tokenSourceConfig  = "config"
	tokenSourceKeyring = "keyring"
)

// resolveToken picks the token from the flag, then the configuration
// (including GAMEPANEL_PANEL_TOKEN), then the keyring entry for hostname.
func (a *app) resolveToken(hostname string) (gamepanel.PersonalAccessToken, string, error) {
	if token := strings.TrimSpace(a.token); token != "" {
		return gamepanel.PersonalAccessToken(token), tokenSourceFlag, nil
	}
	if token := strings.TrimSpace(a.cfg.Panel.Token); token != "" {
		return gamepanel.PersonalAccessToken(token), tokenSourceConfig, nil
	}

	store, err := a.openStore()
	if err != nil {
		return "", "", err
	}
	token, err := store.Token(hostname)
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return "", "", fmt.Errorf("no token for %s: run 'gamepanel auth login' or set GAMEPANEL_PANEL_TOKEN", hostname)
		}
		return "", "", err
	}

	a.logger.Debug().Str("hostname", hostname).Msg("Using token from keyring")
	return token, tokenSourceKeyring, nil
}

// write renders value with the configured format and query
func (a *app) write(cmd *cobra.Command, value any) error {
	return output.Write(cmd.OutOrStdout(), value, output.Options{
		Format: a.cfg.Output.Format,
		Query:  a.query,
	})
}
