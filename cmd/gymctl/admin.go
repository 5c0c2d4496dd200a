package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/backend"
	"github.com/gymdesk/gym-api/internal/service"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(c *cli) *cobra.Command {
	var u domain.User

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, e.g. the first one on a fresh database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if u.Password == "" {
				pw, err := readLine(cmd)
				if err != nil {
					return err
				}
				u.Password = pw
			}

			ctx := cmd.Context()
			e, err := c.connect(ctx, cmd.ErrOrStderr(), backend.Options{})
			if err != nil {
				return err
			}
			defer e.close()

			a, err := domain.NewAdmin(u)
			if err != nil {
				return err
			}
			svc := service.NewAdminService(e.backend.Stores(), auth.NewBcryptHasher(e.cfg.Auth.BcryptCost), e.logger)
			if err := svc.Create(ctx, a); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", a.Email, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&u.Nombre, "nombre", "", "first name")
	cmd.Flags().StringVar(&u.Apellido, "apellido", "", "last name")
	cmd.Flags().StringVar(&u.DNI, "dni", "", "8 character national id")
	cmd.Flags().StringVar(&u.Email, "email", "", "login email")
	cmd.Flags().StringVar(&u.Password, "password", "", "password; read from stdin when empty")
	for _, name := range []string{"nombre", "apellido", "dni", "email"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				line, err := readLine(cmd)
				if err != nil {
					return err
				}
				pw = line
			}

			hash, err := auth.NewBcryptHasher(cost).Hash(pw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")
	return cmd
}

// readLine reads one non-empty line from the command's stdin.
func readLine(cmd *cobra.Command) (string, error) {
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", errors.New("password is required")
	}
	line := strings.TrimRight(sc.Text(), "\r")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}
