// Command inventory tracks stock items from the terminal: an interactive TUI
// plus scriptable subcommands over the same SQLite store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
