package main

import (
	"flag"
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zgs/booking-client/app"
	"github.com/zgs/booking-client/config"
)

func main() {
	server := flag.String("server", "", "backend base url, overrides BOOKING_BASE_URL")
	debug := flag.Bool("debug", false, "log every request")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env loaded", zap.Error(err))
	}
	var opts []config.Option
	if *debug {
		opts = append(opts, config.WithLogLevel(zapcore.DebugLevel))
	}
	cfg, err := config.NewConfig(opts...)
	if err != nil {
		stdLog.Fatal("config ", zap.Error(err))
	}
	if *server != "" {
		cfg.Backend.BaseURL = *server
	}

	if err := app.Run(cfg); err != nil {
		os.Exit(1)
	}
}
