package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sweetshop/internal/config"
	"sweetshop/internal/database"
	"sweetshop/internal/repository"
)

var sweetCmd = &cobra.Command{
	Use:   "sweet",
	Short: "Inspect the inventory",
}

var sweetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sweets",
	Run:   runSweetList,
}

func init() {
	rootCmd.AddCommand(sweetCmd)
	sweetCmd.AddCommand(sweetListCmd)
}

func runSweetList(cmd *cobra.Command, args []string) {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewSweetRepository(db)
	sweets, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to list sweets: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tQUANTITY")
	for _, s := range sweets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n", s.ID, s.Name, s.Category, s.Price, s.Quantity)
	}
	w.Flush()
}
