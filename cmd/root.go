package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fetch-tool/internal/adapters/download"
	"github.com/kamal-hamza/fetch-tool/internal/adapters/manifest"
	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/internal/core/services"
	"github.com/kamal-hamza/fetch-tool/pkg/appdir"
	"github.com/kamal-hamza/fetch-tool/pkg/config"
	"github.com/kamal-hamza/fetch-tool/pkg/ui"
)

// Exit codes for the two user errors the dispatcher reports itself
const (
	exitInvalidArguments = -1
	exitNotAvailable     = -2
)

// usageText is printed for help and for any unknown command
const usageText = `rootfs helper

valid arguments: installed, available, fetch <image>
	installed: show installed rootfses
	available: show rootfses available for download
	fetch <name>: download a rootfs
`

// exitError carries a process exit code for errors already reported to the user
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootOptions holds flag values and the services built from them
type rootOptions struct {
	configPath  string
	manifestURL string
	verbose     bool

	table     bool
	pick      bool
	verify    bool
	outputDir string
	copyPath  bool
	overwrite bool

	cfg    *config.Config
	logger *slog.Logger

	// Services are built in initializeApp unless already set
	availableService *services.AvailableService
	fetchService     *services.FetchService

	// Interactive hooks
	picker   func([]domain.Image) (domain.Image, error)
	clipper  func(string) error
	isTTY    func(io.Writer) bool
	progress downloadRunner
}

var rootCmd = newRootCmd(&rootOptions{})

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch_tool [installed | available | fetch <image>]",
		Short: "List and download rootfs images from the published manifest",
		Long: usageText + `
Images are described by a JSON manifest fetched on every run. The manifest
location can be changed with --manifest-url, the manifest_url config key, or
the FETCH_TOOL_MANIFEST_URL environment variable.`,
		Args:              cobra.ArbitraryArgs,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              opts.run,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	cmd.SetVersionTemplate(versionString() + "\n")
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		out := c.OutOrStdout()
		fmt.Fprint(out, usageText)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "flags:")
		fmt.Fprint(out, c.Flags().FlagUsages())
	})
	// Unknown flags are unknown arguments: show usage and exit 0
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		fmt.Fprint(c.OutOrStdout(), usageText)
		return nil
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/fetch_tool/config.yaml)")
	pf.StringVar(&opts.manifestURL, "manifest-url", "", "Manifest location (overrides config and environment)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	f := cmd.Flags()
	f.BoolVar(&opts.table, "table", false, "available: render images as a table")
	f.BoolVar(&opts.pick, "pick", false, "fetch: choose the image interactively")
	f.BoolVar(&opts.verify, "verify", false, "fetch: verify the download against the manifest sha256")
	f.StringVarP(&opts.outputDir, "output-dir", "o", "", "fetch: destination directory (default from config, else .)")
	f.BoolVar(&opts.copyPath, "copy", false, "fetch: copy the saved file path to the clipboard")
	f.BoolVar(&opts.overwrite, "overwrite", false, "fetch: replace an existing file instead of numbering the new one")

	return cmd
}

// Execute runs the root command and exits with the dispatcher's status code
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}

	fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
	os.Exit(1)
}

// initializeApp loads configuration and wires adapters into services.
// Only commands that reach the network call it.
func (o *rootOptions) initializeApp(cmd *cobra.Command) error {
	config.LoadDotEnv()

	path := o.configPath
	if path == "" {
		p, err := appdir.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if o.manifestURL != "" {
		cfg.ManifestURL = o.manifestURL
	}
	if cmd.Flags().Changed("verify") {
		cfg.VerifyChecksum = o.verify
	}
	if o.outputDir != "" {
		cfg.DownloadDir = o.outputDir
	}
	o.cfg = cfg

	ui.SetTheme(cfg.ColorTheme)

	level := parseLevel(cfg.LogLevel)
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	o.logger.Debug("configuration loaded", "path", path, "download_dir", cfg.DownloadDir)

	if created, err := config.EnsureFile(path); err != nil {
		o.logger.Debug("could not write default config", "path", path, "error", err)
	} else if created {
		o.logger.Debug("wrote default config", "path", path)
	}

	if o.availableService == nil || o.fetchService == nil {
		ua := "fetch_tool/" + Version
		source := manifest.NewHTTPSource(cfg.ManifestURL,
			manifest.WithClient(http.DefaultClient),
			manifest.WithUserAgent(ua),
			manifest.WithLogger(o.logger),
		)
		downloader := download.NewHTTPDownloader(http.DefaultClient, ua, o.logger)
		o.logger.Debug("manifest source ready", "url", source.URL())

		o.availableService = services.NewAvailableService(source)
		o.fetchService = services.NewFetchService(source, downloader)
	}

	if o.picker == nil {
		o.picker = pickImage
	}
	if o.clipper == nil {
		o.clipper = copyToClipboard
	}
	if o.isTTY == nil {
		o.isTTY = isTerminal
	}
	if o.progress == nil {
		o.progress = runWithProgress
	}

	return nil
}

// run parses the positional arguments and dispatches on the command kind.
// Usage and installed never load configuration.
func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	command, parseErr := domain.ParseCommand(args)

	switch command.Kind {
	case domain.CommandInstalled:
		return o.runInstalled(cmd)
	case domain.CommandAvailable:
		if err := o.initializeApp(cmd); err != nil {
			return err
		}
		o.logger.Debug("dispatching", "command", command.Kind.String(), "args", args)
		return o.runAvailable(cmd)
	case domain.CommandFetch:
		return o.runFetch(cmd, command, args, parseErr)
	default:
		fmt.Fprint(cmd.OutOrStdout(), usageText)
		return nil
	}
}

// manifestContext bounds a manifest request by the configured timeout
func (o *rootOptions) manifestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.cfg.ManifestTimeout())
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
