// Command abacus is a scientific calculator with persistent history.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	a := newApp()
	root := newRootCmd(a)

	err := root.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
