package main

import (
	"fmt"
	"os"

	"recipebox/cmd/recipebox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
