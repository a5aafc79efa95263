package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dharmasatrya/aerohub/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
