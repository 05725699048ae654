// ABOUTME: Entry point for the luxe storefront CLI
// ABOUTME: Shop the LUXE fashion store from the terminal or a script

package main

import (
	"fmt"
	"os"

	"github.com/luxefashion/luxe-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
