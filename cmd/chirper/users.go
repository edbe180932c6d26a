package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chirper/internal/dto"
	"chirper/internal/service"
	"chirper/pkg/container"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password, err := promptPassword(cmd.OutOrStdout(), cmd.InOrStdin())
		if err != nil {
			return err
		}

		return container.Invoke(func(auth service.AuthService) error {
			id, err := auth.Register(cmd.Context(), &dto.RegisterDTO{Username: username, Password: password})
			if err != nil {
				if errors.Is(err, service.ErrDuplicateUsername) {
					return fmt.Errorf("user already exists: %s", username)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created (id %d)\n", username, id)
			return nil
		})
	},
}

// promptPassword 终端下不回显并要求确认，管道输入时读取第一行
func promptPassword(out io.Writer, in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Enter password: ")
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Fprint(out, "Confirm password: ")
		confirm, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		if string(password) != string(confirm) {
			return "", errors.New("passwords do not match")
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	usersCmd.AddCommand(usersAddCmd)
	rootCmd.AddCommand(usersCmd)
}
