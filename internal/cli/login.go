package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"

	"petdiary/internal/client"
)

// promptSecret reads a line without echo when stdin is a terminal.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// LoginCmd verifies an access key against the server and stores it in the
// OS keyring.
type LoginCmd struct{}

// Run prompts for the key unless --key was given.
func (c *LoginCmd) Run(ctx *Context) error {
	key := ctx.Key
	if key == "" {
		var err error
		if key, err = promptSecret("Access key: "); err != nil {
			return err
		}
	}
	if key == "" {
		return errors.New("access key cannot be empty")
	}

	api := client.NewAPI(ctx.baseURL(), key, nil)
	if _, err := api.ListWeights(context.Background()); err != nil {
		var se *client.StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return errors.New("the server rejected this access key")
		}
		return fmt.Errorf("could not verify access key: %w", err)
	}

	if err := StoreKey(key); err != nil {
		return err
	}
	ctx.printf("Access key saved to the OS keyring.\n")
	return nil
}

// LogoutCmd removes the stored access key.
type LogoutCmd struct{}

// Run deletes the key from the keyring.
func (c *LogoutCmd) Run(ctx *Context) error {
	err := DeleteStoredKey()
	if errors.Is(err, ErrKeyNotFound) {
		ctx.printf("No stored access key.\n")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.printf("Access key removed.\n")
	return nil
}
