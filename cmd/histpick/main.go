package main

import (
	"os"

	"github.com/baaaaaaaka/histpick/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
