package main

import (
	"log"

	"github.com/waygate-dev/waygate/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ waygate failed to start: %v", err)
	}
}
