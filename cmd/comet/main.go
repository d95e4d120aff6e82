package main

import (
	"os"

	"github.com/comet-cli/comet/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
