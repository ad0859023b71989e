package main

import (
	"os"

	"github.com/arthur-debert/waylandify/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
