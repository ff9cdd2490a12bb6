// ABOUTME: Configuration CLI commands
// ABOUTME: Token entry reads from the terminal without echoing
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/voyagehq/tripdesk/config"
)

// SetURLCommand stores the backend base URL
func SetURLCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("set-url", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: config set-url <base-url>")
	}
	if err := cfg.SetBaseURL(fs.Arg(0)); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("✓ API URL set to %s\n", fs.Arg(0))
	return nil
}

// SetTokenCommand stores the API token, prompting without echo when the
// session is an interactive terminal
func SetTokenCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("set-token", flag.ExitOnError)
	fs.Parse(args)

	var token string
	if fs.NArg() == 1 {
		token = fs.Arg(0)
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("API token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	} else {
		return fmt.Errorf("usage: config set-token <token> (or run interactively)")
	}

	if token == "" {
		return fmt.Errorf("token must not be empty")
	}
	if err := cfg.SetToken(token); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("✓ API token saved")
	return nil
}

// ShowConfigCommand prints the effective configuration with the token
// masked
func ShowConfigCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.Parse(args)

	fmt.Printf("API URL: %s\n", cfg.BaseURL)
	fmt.Printf("Token:   %s\n", maskToken(cfg.Token))
	fmt.Printf("Timeout: %s\n", cfg.Timeout())
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
