package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sweetshop",
	Short: "Sweets inventory backend",
	Long:  "REST backend for a sweets inventory with JWT auth and role-gated stock management.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
