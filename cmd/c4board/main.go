package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/c4board/c4board/internal/commands"
)

func main() {
	// A local .env can set C4BOARD_* variables during development; a missing
	// file is not an error.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
