package main

import (
	"os"

	"github.com/moneymate/backend/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
