package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/starlet/engine"
	"github.com/spaghettifunk/starlet/engine/core"
	"github.com/spaghettifunk/starlet/engine/gpu/opengl"
	"github.com/spaghettifunk/starlet/engine/platform/desktop"
)

func main() {
	configPath := flag.String("config", "starlet.toml", "path to the engine config file")
	sceneName := flag.String("scene", "", "scene to load, overrides the config")
	flag.Parse()

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}

	e, err := engine.New(cfg, desktop.New(), opengl.New())
	if err != nil {
		core.LogFatal("failed to create engine: %s", err)
	}

	if err := run(e, cfg); err != nil {
		_ = e.Shutdown()
		os.Exit(1)
	}
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
}

func run(e *engine.Engine, cfg *engine.Config) error {
	if err := e.Initialize(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title); err != nil {
		return err
	}
	if err := e.LoadScene(cfg.Scene); err != nil {
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	// the loop owns the window, so signals only ask it to stop
	return e.RunUntilSignal(sigCh)
}
