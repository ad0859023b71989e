// Package topics holds the help topics shown by `waylandify help <topic>`.
package topics

import "embed"

// FS contains the topic files.
//
//go:embed *.md
var FS embed.FS
