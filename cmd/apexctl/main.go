package main

import (
	"fmt"
	"os"

	"github.com/antogkou/salesforce-apex-client/cmd/apexctl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
