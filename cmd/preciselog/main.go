// Command preciselog renders timestamps and emits single log records
// with the preciselog formatters. It is meant for trying out formatter
// configurations from a shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
