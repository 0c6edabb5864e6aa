// Package cli implements the petdiary subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"petdiary/internal/client"
	"petdiary/internal/config"
)

// Context is passed to every command's Run method.
type Context struct {
	Config *config.Config
	Logger *log.Logger
	Out    io.Writer
	// Key is the --key flag; empty means "look it up".
	Key string
	// Server overrides client.base_url when set.
	Server string
}

// ErrNoKey is returned by client commands when no access key can be found.
var ErrNoKey = errors.New("no access key: pass --key, set client.key or run 'petdiary login'")

// ResolveKey returns the access key from the flag, the config, or the OS
// keyring, in that order.
func (c *Context) ResolveKey() (string, error) {
	if c.Key != "" {
		return c.Key, nil
	}
	if c.Config.Client.Key != "" {
		return c.Config.Client.Key, nil
	}
	key, err := GetStoredKey()
	if errors.Is(err, ErrKeyNotFound) {
		return "", ErrNoKey
	}
	if err != nil {
		return "", err
	}
	return key, nil
}

func (c *Context) baseURL() string {
	if c.Server != "" {
		return c.Server
	}
	return c.Config.Client.BaseURL
}

// API returns a client for the configured server.
func (c *Context) API() (*client.API, error) {
	key, err := c.ResolveKey()
	if err != nil {
		return nil, err
	}
	return client.NewAPI(c.baseURL(), key, nil), nil
}

// State returns a client cache for the configured server.
func (c *Context) State() (*client.State, error) {
	api, err := c.API()
	if err != nil {
		return nil, err
	}
	return client.NewState(api, c.Logger), nil
}

func (c *Context) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format, args...)
}
