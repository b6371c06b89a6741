package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/cli"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	os.Exit(int(cli.Run()))
}
