// Package main hosts the curator CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the internal packages as terminal
// verbs: organizing and watching the source directory, duplicate scanning,
// plain file operations, archives, encryption, placeholders, inspection, and
// search. It centralizes configuration resolution and logger setup so
// subcommands stay declarative; the heavy lifting lives in the internal
// packages.
package main
