package main

import (
	"log"

	"github.com/outlink-dev/outlink/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ outlink failed to start: %v", err)
	}
}
