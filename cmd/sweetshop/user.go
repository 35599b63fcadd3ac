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
	"sweetshop/internal/models"
	"sweetshop/internal/repository"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  "Create, list, promote, and delete user accounts.",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run:   runUserList,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Run:   runUserCreate,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [email]",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	Run:   runUserDelete,
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote [email]",
	Short: "Promote a user to ADMIN",
	Args:  cobra.ExactArgs(1),
	Run:   runUserPromote,
}

var (
	userEmail    string
	userPassword string
	userName     string
	userRole     string
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userPromoteCmd)

	userCreateCmd.Flags().StringVarP(&userEmail, "email", "e", "", "User email (required)")
	userCreateCmd.Flags().StringVarP(&userPassword, "password", "p", "", "User password (required)")
	userCreateCmd.Flags().StringVarP(&userName, "name", "n", "", "Display name")
	userCreateCmd.Flags().StringVarP(&userRole, "role", "r", "CUSTOMER", "User role (ADMIN/CUSTOMER)")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")
}

func getUserRepo() *repository.UserRepository {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return repository.NewUserRepository(db)
}

func runUserList(cmd *cobra.Command, args []string) {
	repo := getUserRepo()

	users, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Email, u.Name, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func runUserCreate(cmd *cobra.Command, args []string) {
	repo := getUserRepo()
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, userEmail); err == nil {
		log.Fatalf("User with email %s already exists", userEmail)
	}

	role := models.Role(userRole)
	if !role.Valid() {
		log.Fatalf("Invalid role: %s (must be ADMIN or CUSTOMER)", userRole)
	}

	user := &models.User{
		Email:    userEmail,
		Password: userPassword,
		Name:     userName,
		Role:     role,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User %s created successfully (ID: %s, role: %s)\n", userEmail, user.ID, role)
}

func runUserDelete(cmd *cobra.Command, args []string) {
	email := args[0]
	repo := getUserRepo()
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("User not found: %s", email)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		log.Fatalf("Failed to delete user: %v", err)
	}

	fmt.Printf("User %s deleted successfully\n", email)
}

func runUserPromote(cmd *cobra.Command, args []string) {
	email := args[0]
	repo := getUserRepo()
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("User not found: %s", email)
	}

	if err := repo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}

	fmt.Printf("User %s promoted to ADMIN\n", email)
}
