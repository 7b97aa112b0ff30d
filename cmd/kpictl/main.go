package main

import (
	"os"
)

func main() {
	if err := run(&app{}, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
