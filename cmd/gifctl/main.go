package main

import (
	"os"

	"github.com/sifan077/GifBoard/internal/infra/logger"
)

func main() {
	defer func() { _ = logger.Sync() }()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
