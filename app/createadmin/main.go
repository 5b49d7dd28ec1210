package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/artcontest/contest-backend/internal/config"
	"github.com/artcontest/contest-backend/internal/database"
	"github.com/artcontest/contest-backend/internal/pkg/jwt"
	mysqlRepo "github.com/artcontest/contest-backend/internal/repository/mysql"
	"github.com/artcontest/contest-backend/internal/usecase/admin"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create a moderator account",
	Long:  "Create a moderator account. The password is prompted for when --password is omitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			p, err := promptPassword()
			if err != nil {
				return err
			}
			password = p
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				logrus.Errorf("got error when closing the DB connection: %v", err)
			}
		}()
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		svc := admin.NewService(mysqlRepo.NewAdminRepository(db), jwt.New(cfg.JWTSecret, cfg.JWTTTL))
		a, err := svc.Register(context.Background(), name, email, password)
		if err != nil {
			return err
		}

		fmt.Printf("Admin created: %s <%s>\n", a.Name, a.Email)
		fmt.Printf("ID: %s\n", a.ID)
		return nil
	},
}

func promptPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func init() {
	rootCmd.Flags().StringP("name", "n", "Admin", "Display name")
	rootCmd.Flags().StringP("email", "e", "", "Login email")
	rootCmd.Flags().StringP("password", "p", "", "Password (prompted when empty)")
	_ = rootCmd.MarkFlagRequired("email")
}
