// ABOUTME: Entry point for the tripdesk admin console, CLI, and MCP server
// ABOUTME: Routes to the TUI, admin commands, or MCP based on arguments
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/cli"
	"github.com/voyagehq/tripdesk/config"
	"github.com/voyagehq/tripdesk/tui"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	apiURL := flag.String("api-url", "", "Backend base URL (overrides config)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("tripdesk version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	if *apiURL != "" {
		cfg.BaseURL = *apiURL
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "config":
		if len(commandArgs) == 0 {
			fmt.Println("Error: config requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		runConfigCommand(cfg, commandArgs[0], commandArgs[1:])

	case "tui":
		client := mustClient(cfg)
		p := tea.NewProgram(tui.NewModel(client), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal("TUI failed", "err", err)
		}

	case "mcp":
		client := mustClient(cfg)
		if err := cli.MCPCommand(client); err != nil {
			log.Fatal("MCP server failed", "err", err)
		}

	case "admin":
		if len(commandArgs) == 0 {
			fmt.Println("Error: admin requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		client := mustClient(cfg)
		runAdminCommand(client, commandArgs[0], commandArgs[1:])

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func mustClient(cfg *config.Config) *api.Client {
	if cfg.BaseURL == "" {
		log.Fatal("No backend URL configured; run: tripdesk config set-url <base-url>")
	}
	client, err := api.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout())
	if err != nil {
		log.Fatal("Failed to build API client", "err", err)
	}
	return client
}

func runConfigCommand(cfg *config.Config, command string, args []string) {
	var err error
	switch command {
	case "show":
		err = cli.ShowConfigCommand(cfg, args)
	case "set-url":
		err = cli.SetURLCommand(cfg, args)
	case "set-token":
		err = cli.SetTokenCommand(cfg, args)
	default:
		fmt.Printf("Unknown config command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Error", "err", err)
	}
}

func runAdminCommand(client *api.Client, command string, args []string) {
	var err error
	switch command {
	case "add-grade":
		err = cli.AddGradeCommand(client, args)
	case "list-grades":
		err = cli.ListGradesCommand(client, args)
	case "update-grade":
		err = cli.UpdateGradeCommand(client, args)
	case "deactivate-grade":
		err = cli.DeactivateGradeCommand(client, args)

	case "add-location":
		err = cli.AddLocationCommand(client, args)
	case "list-locations":
		err = cli.ListLocationsCommand(client, args)
	case "list-geography":
		err = cli.ListGeographyCommand(client, args)

	case "add-travel-mode":
		err = cli.AddTravelModeCommand(client, args)
	case "list-travel-modes":
		err = cli.ListTravelModesCommand(client, args)

	case "add-approval-matrix":
		err = cli.AddApprovalMatrixCommand(client, args)
	case "list-approval-matrices":
		err = cli.ListApprovalMatricesCommand(client, args)

	case "list-users":
		err = cli.ListUsersCommand(client, args)

	case "list-applications":
		err = cli.ListApplicationsCommand(client, args)
	case "view-application":
		err = cli.ViewApplicationCommand(client, args)
	case "open-document":
		err = cli.OpenDocumentCommand(client, args)

	default:
		fmt.Printf("Unknown admin command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Error", "err", err)
	}
}

func printUsage() {
	fmt.Printf(`tripdesk v%s - Travel and expense admin console

USAGE:
  tripdesk [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --api-url <url>        Backend base URL (overrides config)

COMMANDS:
  tui                    Start the full-screen admin console
  mcp                    Start MCP server on stdio
  admin                  Master-data and travel commands
  config                 Manage local configuration

CONFIG:
  tripdesk config show                  Show effective configuration
  tripdesk config set-url <base-url>    Store the backend base URL
  tripdesk config set-token [token]     Store the API token (prompts if omitted)

ADMIN COMMANDS:
  tripdesk admin add-grade                Add a grade
    --name <name>                           Grade name (required)
    --level <n>                             Seniority level
  tripdesk admin list-grades              List grades
    --query <text>                          Filter by name
    --all                                   Include inactive grades
  tripdesk admin update-grade             Update a grade
    --id <id>                               Grade ID (required)
  tripdesk admin deactivate-grade         Retire a grade
    --id <id>                               Grade ID (required)

  tripdesk admin add-location             Add an office location
    --name <name> --city <id>               Name and city (required)
  tripdesk admin list-locations           List locations
    --country <id> --state <id> --city <id> Geography filters
  tripdesk admin list-geography           List states and cities of a country
    --country <id>                          Country ID (required)

  tripdesk admin add-travel-mode          Add a travel mode
    --name <name> --kind <kind>             Kind: flight, train, car, bus
  tripdesk admin list-travel-modes        List travel modes

  tripdesk admin add-approval-matrix      Create approval matrix rows
    --grades <id,id,...>                    One row per grade (required)
    --company <id> --approver <id>          Company and approver (required)
  tripdesk admin list-approval-matrices   List approval matrix rows
    --grade <id>                            Filter by grade

  tripdesk admin list-users               List users
    --company <id> --query <text>           Filters

  tripdesk admin list-applications        List travel applications
    --status <status>                       Filter by status
  tripdesk admin view-application         Show one application with itinerary
    --id <id>                               Application ID (required)
  tripdesk admin open-document            Print a booking document URL
    --booking <id>                          Booking ID (required)

MCP SERVER:
  tripdesk mcp           Start MCP server (for Claude Desktop integration)
`, version)
}
