package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/otaku/internal/config"
)

const tuiLogFile = "otaku.log"

var envKeyReplacer = strings.NewReplacer(".", "_")

// stdout receives command output. Logs go to stderr (or a file in TUI mode)
// so JSON and YAML output can be piped.
var stdout io.Writer = os.Stdout

// CLI represents the complete command structure for the otaku application
type CLI struct {
	// Global flags
	Debug     bool `help:"Enable debug logging"`
	Overwrite bool `help:"Overwrite existing export files"`

	Browse BrowseCmd `cmd:"" help:"Show top, trending and seasonal titles"`
	Search SearchCmd `cmd:"" help:"Search anime and manga together"`
	TUI    TUICmd    `cmd:"" name:"tui" help:"Browse and search interactively"`
	Genres GenresCmd `cmd:"" help:"List the genres accepted by --genre"`
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("otaku"),
		kong.Description("Browse and search anime and manga from MyAnimeList via the Jikan API."),
		kong.UsageOnError(),
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI
	ctx := kong.Parse(&cli, parserOptions()...)

	closeLog, err := initLogging(cli.Debug, ctx.Command() == "tui")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
		os.Exit(1)
	}
	defer closeLog()

	initConfig()
	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support, OTAKU_JIKAN_BASEURL and so on
	viper.SetEnvPrefix("otaku")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv(config.KeyJikanBaseURL, "OTAKU_JIKAN_BASEURL", "JIKAN_BASE_URL"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, writing default config file")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Warn("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	viper.Set(config.KeyOverwrite, cli.Overwrite)
}

// initLogging installs the default slog logger. In TUI mode the log goes to
// a file so it doesn't draw over the interface. The returned function
// closes that file.
func initLogging(debug, toFile bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if toFile {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	handler := humanlog.NewHandler(out, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}

// commandContext is cancelled on Ctrl+C.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
