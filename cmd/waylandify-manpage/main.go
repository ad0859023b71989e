package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/waylandify/internal/cli"
	"github.com/arthur-debert/waylandify/internal/version"
)

func main() {
	if err := writeManPage(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

// writeManPage renders the section 1 man page of the whole command tree.
func writeManPage(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "WAYLANDIFY",
		Section: "1",
		Source:  "waylandify " + version.Version,
		Manual:  "waylandify manual",
	}
	return doc.GenMan(cli.NewRootCmd(), header, w)
}
