package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"msdsapi/internal/config"
)

// @title       MSDS API
// @version     1.0
// @description Catalog of material safety data sheets with their PDFs and attachment images.
// @BasePath    /
func main() {
	cfg := config.Load()

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
