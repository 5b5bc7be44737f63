package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"lightshafts/internal/config"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	logLevel   string
	fullscreen bool
	noWatch    bool
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "lightshafts",
		Short:         "Volumetric light scattering demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "configuration file (.ini, .toml or .yaml)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level, overrides [Engine] LogLevel")
	f.BoolVar(&opts.fullscreen, "fullscreen", false, "open on the primary monitor")
	f.BoolVar(&opts.noWatch, "no-watch", false, "do not reload the configuration when it changes")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	src, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	settings := config.Read(src)
	if cmd.Flags().Changed("log-level") {
		settings.Engine.LogLevel = opts.logLevel
	}
	if opts.fullscreen {
		settings.Window.Fullscreen = true
	}
	if opts.noWatch {
		settings.Engine.Watch = false
	}

	log, err := newLogger(settings.Engine.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := setup(settings, opts.configPath, log)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	closer.Bind(func() {
		a.loop.Stop()
		<-done
	})

	log.Info("running",
		zap.Float64("update_period", settings.Engine.UpdatePeriod),
		zap.Float64("render_period", settings.Engine.RenderPeriod))
	a.loop.Run()
	a.Dispose()
	close(done)
	log.Info("shutdown")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func main() {
	defer closer.Close()
	if err := newRootCommand().Execute(); err != nil {
		closer.Fatalln(err)
	}
}
