package main

import (
	"os"

	"github.com/data-castle/daybook/internal/cli"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
