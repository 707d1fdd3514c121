// Package main provides the entry point for the VoiceStudio CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/voicestudio/voicestudio/internal/pipeline"
	"github.com/voicestudio/voicestudio/internal/server"
	"github.com/voicestudio/voicestudio/internal/synth"
	"github.com/voicestudio/voicestudio/internal/synth/edge"
	"github.com/voicestudio/voicestudio/internal/translate"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	serveAddr  string
	engineName string

	rootCmd = &cobra.Command{
		Use:   "voicestudio",
		Short: "Paste text, hear it spoken. A browser studio for language practice.",
		Long: "\nVoiceStudio serves a small browser studio: paste text, optionally " +
			"machine-translate it to English, synthesize it to speech, and drill " +
			"tricky passages with an A/B loop.",
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runServe()
		},
	}
)

// expandPath resolves a leading ~ in user supplied paths.
func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func setupLog() {
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.Kitchen)
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		log.SetFormatter(log.LogfmtFormatter)
	}
	if viper.GetBool("debug") || os.Getenv("VOICESTUDIO_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}
}

// buildStreamer selects the synthesis backend. The mock engine exists so
// the studio can run offline.
func buildStreamer(engine string) (synth.Streamer, error) {
	switch engine {
	case "edge", "":
		cfg := edge.DefaultConfig(viper.GetString("edge.url"))
		if d := viper.GetDuration("edge.connect_timeout"); d > 0 {
			cfg.ConnectTimeout = d
		}
		if rps := viper.GetFloat64("edge.requests_per_second"); rps > 0 {
			cfg.RequestsPerSecond = rps
		}
		cfg.Logger = log.Default()
		return edge.NewClient(cfg)
	case "mock":
		return &synth.MockStreamer{}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want edge or mock)", engine)
	}
}

func buildTranslator() *translate.Adapter {
	var backend translate.Translator
	if viper.GetBool("translate.enabled") {
		opts := []translate.GoogleOption{}
		if ep := viper.GetString("translate.endpoint"); ep != "" {
			opts = append(opts, translate.WithEndpoint(ep))
		}
		backend = translate.NewGoogle(opts...)
	}
	return translate.NewAdapter(backend, log.Default())
}

func runServe() error {
	cfg, err := env.ParseAs[server.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	} else if a := viper.GetString("addr"); a != "" {
		cfg.Addr = a
	}

	engine := engineName
	if engine == "" {
		engine = viper.GetString("engine")
	}
	streamer, err := buildStreamer(engine)
	if err != nil {
		return err
	}

	orch := pipeline.New(streamer,
		pipeline.WithMaxChars(viper.GetInt("chunk.max_chars")),
		pipeline.WithLogger(log.Default()))

	srv := server.New(cfg, orch, buildTranslator(), log.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	setupLog()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "synthesis engine (edge or mock)")
	rootCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address for the studio server")

	_ = viper.BindPFlag("addr", rootCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))

	viper.SetDefault("addr", "")
	viper.SetDefault("engine", "edge")
	viper.SetDefault("chunk.max_chars", 2000)
	viper.SetDefault("translate.enabled", true)
	viper.SetDefault("translate.endpoint", "")
	viper.SetDefault("edge.url", "")
	viper.SetDefault("edge.connect_timeout", "10s")
	viper.SetDefault("edge.requests_per_second", 4.0)

	rootCmd.AddCommand(speakCmd, voicesCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "voicestudio")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "voicestudio")}, dirs...)
	}

	if c := os.Getenv("VOICESTUDIO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("voicestudio")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("voicestudio")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "voicestudio.yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
