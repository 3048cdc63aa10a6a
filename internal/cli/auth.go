package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	styleai "github.com/styleai/styleai-go"
)

func newRegisterCmd(app *App) *cobra.Command {
	var req styleai.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			if req.Password == "" {
				req.Password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}
			u, err := c.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			cmd.Printf("Welcome, %s! You are signed in as %s.\n", u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&req.DateOfBirth, "date-of-birth", "", "date of birth (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			if password == "" {
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
			}
			u, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			cmd.Printf("Signed in as %s <%s>.\n", u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			cmd.Println("Signed out.")
			return nil
		},
	}
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
