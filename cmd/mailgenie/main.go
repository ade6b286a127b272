// mailgenie is the command-line client for the generate-email function.
package main

import (
	"os"

	"mailgenie/cmd/mailgenie/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
