package main

import (
	"errors"
	stdLog "log"
	"os"
	"time"

	"github.com/Astemirdum/bookhub/library/app"
	"github.com/Astemirdum/bookhub/library/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

//	@title			BookHub library API
//	@version		1.0
//	@description	Patrons, staff and the book catalog.
//	@BasePath		/api/v1

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.InfoLevel),
		config.WithReadTimeout(10*time.Second),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("run ", err)
	}
}
