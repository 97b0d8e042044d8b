package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(newCLI()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err.Error()))
		os.Exit(1)
	}
}
