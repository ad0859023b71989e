// Package desktop reads, rewrites and writes freedesktop launcher files.
//
// The model is deliberately small: a Document holds ordered sections, a
// Section holds ordered, case-sensitive key/value entries. Comments and
// blank lines survive a parse/serialize cycle in their original slots;
// values are never interpolated. Localized keys such as Name[de] are plain
// keys to this package.
//
// MergeFlags is the command-line side: it inserts missing flags right after
// the executable of an Exec value and is idempotent.
//
//	out, changed, err := desktop.Rewrite(text, []string{"--ozone-platform=wayland"})
package desktop
