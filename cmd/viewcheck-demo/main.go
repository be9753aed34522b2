package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/toyz/viewcheck/internal/demo"
	"github.com/toyz/viewcheck/internal/logger"
)

func main() {
	adapterFlag := flag.String("adapter", "", "Router to serve with: echo, gin or fiber (default $VIEWCHECK_ADAPTER or echo)")
	portFlag := flag.Int("port", 0, "Port to listen on (default $PORT or 8080)")
	flag.Parse()

	log, err := logger.ConfigureFromEnv("viewcheck-demo")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fx.New(
		fx.Supply(log),
		fx.WithLogger(func(l *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: l}
		}),
		fx.Decorate(func(cfg *demo.Config) *demo.Config {
			if *adapterFlag != "" {
				cfg.Adapter = *adapterFlag
			}
			if *portFlag != 0 {
				cfg.Port = *portFlag
			}
			return cfg
		}),
		demo.Module,
	).Run()
}
