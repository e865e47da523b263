package main

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/tui"
)

func main() {
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "hasami-local: %v\n", err)
		os.Exit(1)
	}
}
