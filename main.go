package main

import (
	"os"

	"github.com/filmrehberi/filmrehberi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
