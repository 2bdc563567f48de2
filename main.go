// ms converts between human-readable duration strings and milliseconds.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/ms/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
