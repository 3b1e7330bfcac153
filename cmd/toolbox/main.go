// Command toolbox manages editor toolbox macros and shelves.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dshills/toolbox/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if cli.IsUsageError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
