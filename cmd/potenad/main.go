package main

import (
	"fmt"
	"os"

	"github.com/zhubert/potenad/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "potenad: %v\n", err)
		os.Exit(1)
	}
}
