package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mockstage/interviewd/src/interviewd/auth"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// useraddCmd creates a user directly in the persisted database,
// bypassing the HTTP API. Useful for bootstrapping the first account.
var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Create a user account",
	Long: `Creates a user account directly in the database.

The server must not be running: the database file is loaded, the user
is added and the file is written back. Use it to bootstrap the first
account before any client can authenticate.`,
	RunE: runUseradd,
}

func init() {
	useraddCmd.Flags().StringP("email", "e", "", "Email address")
	useraddCmd.Flags().String("first-name", "", "First name")
	useraddCmd.Flags().String("last-name", "", "Last name")
	useraddCmd.Flags().StringP("password", "p", "", "Password (prompted if not given)")

	rootCmd.AddCommand(useraddCmd)
}

func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(input), nil
}

func runUseradd(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	password, _ := cmd.Flags().GetString("password")

	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return err
		}
	}
	if firstName == "" {
		if firstName, err = promptLine("First name"); err != nil {
			return err
		}
	}
	if lastName == "" {
		if lastName, err = promptLine("Last name"); err != nil {
			return err
		}
	}
	if password == "" {
		fmt.Print("Password: ")
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(bytePassword)
	}

	if email == "" || firstName == "" || lastName == "" || password == "" {
		return fmt.Errorf("email, first name, last name and password are all required")
	}

	database, err := db.New(db.Config{
		PersistPath: viper.GetString("database.path"),
		LoadOnStart: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	hasher := auth.NewDefaultHasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := db.NewUserRepository(database)
	user := db.NewUser(email, firstName, lastName, hash)
	if err := users.Create(user); err != nil {
		return err
	}

	if err := database.Shutdown(); err != nil {
		return fmt.Errorf("failed to persist database: %w", err)
	}

	fmt.Printf("User %s created with ID %s\n", user.Email, user.ID)
	return nil
}
