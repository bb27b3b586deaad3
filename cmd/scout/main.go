// scout is the MateriaScout command line client.
package main

import (
	"fmt"
	"os"

	"github.com/materiascout/materiascout/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
}
