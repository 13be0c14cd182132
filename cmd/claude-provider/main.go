// Command claude-provider is a standalone credential engine for the Claude
// API family. It speaks line-delimited JSON-RPC over stdio (serve), or the
// same protocol over HTTP (serve --http), and offers direct subcommands for
// one-off operations.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
