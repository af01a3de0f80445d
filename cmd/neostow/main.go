package main

import (
	"os"

	"github.com/arthur-debert/neostow/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
