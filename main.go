package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/omnichain-portal/cmd"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
