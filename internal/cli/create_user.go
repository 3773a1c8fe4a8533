package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/virtualcode/readingvault/internal/auth"
	"github.com/virtualcode/readingvault/internal/config"
	"github.com/virtualcode/readingvault/internal/database"
	"github.com/virtualcode/readingvault/internal/database/users"
	"github.com/virtualcode/readingvault/internal/entities"
)

// CreateUserCommand creates a user account from the command line, which is
// handy for bootstrapping the first administrator without the HTTP API.
type CreateUserCommand struct {
	Username     string
	Email        string
	Password     string
	Admin        bool
	DatabasePath string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address for the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (required)")
	fs.BoolVar(&cmd.Admin, "admin", false, "Grant the new account the ADMIN role")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -email <address> -password <secret> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account directly in the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Create the first administrator:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username admin -email admin@example.com -password <secret> -admin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(users.NewRepository(db.DB), cfg.Auth)

	role := entities.RoleUser
	if cmd.Admin {
		role = entities.RoleAdmin
	}

	user, err := service.CreateUser(cmd.Username, cmd.Email, cmd.Password, role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if user.IsAdmin() {
		fmt.Printf("Created administrator %q (id %d)\n", user.Username, user.ID)
	} else {
		fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	}
	return nil
}
