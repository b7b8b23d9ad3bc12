package main

import (
	"log"
	"os"

	"github.com/chainstamp/chainstamp/cmd/chainstamp/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		log.Fatalf("failed to run chainstamp: %v", err)
	}

	os.Exit(0)
}
