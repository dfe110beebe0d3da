// Package cli provides command-line access to NordVPN Indicator. It
// lets users check status, connect, and change settings from the
// terminal without launching the tray application.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"nordvpn-indicator/history"
	"nordvpn-indicator/keyring"
	"nordvpn-indicator/nordvpn"
)

// CLI represents the command-line interface.
type CLI struct {
	client *nordvpn.Client
	store  *history.Store
}

// New creates a new CLI instance. The history store may be nil when
// history is disabled.
func New(client *nordvpn.Client, store *history.Store) *CLI {
	return &CLI{client: client, store: store}
}

// Status prints the current VPN status.
func (c *CLI) Status() error {
	if err := c.client.StatusCheck(); err != nil {
		return err
	}
	snapshot := c.client.Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Status:\t%s\n", snapshot.State)
	if snapshot.State == nordvpn.StatusConnected {
		fmt.Fprintf(w, "Server:\t%s\n", snapshot.Server)
		fmt.Fprintf(w, "Location:\t%s, %s\n", snapshot.Country, snapshot.City)
		fmt.Fprintf(w, "IP:\t%s\n", snapshot.IP)
		fmt.Fprintf(w, "Protocol:\t%s\n", snapshot.Protocol)
		fmt.Fprintf(w, "Transfer:\t%s\n", snapshot.Transfer)
		fmt.Fprintf(w, "Uptime:\t%s\n", snapshot.Uptime)
	}
	w.Flush()

	for _, warning := range snapshot.Warnings() {
		fmt.Println("Warning:", warning)
	}
	return nil
}

// Connect connects to a target: "auto" for the fastest server, a group
// name for server groups, or a country name.
func (c *CLI) Connect(target string) error {
	var err error
	switch {
	case target == "auto":
		fmt.Println("Connecting to the fastest server...")
		err = c.client.Connect()
	case isGroup(c.client, target):
		fmt.Printf("Connecting to group %s...\n", target)
		err = c.client.ConnectGroup(target)
	default:
		fmt.Printf("Connecting to %s...\n", target)
		err = c.client.ConnectCountry(target)
	}
	if err != nil {
		return err
	}

	if confirmation := c.client.Confirmation(); confirmation != "" && c.client.Connected() {
		fmt.Println(confirmation)
	} else {
		fmt.Println("Connection not confirmed; run --status to check.")
	}
	return nil
}

func isGroup(client *nordvpn.Client, target string) bool {
	normalized := strings.ReplaceAll(strings.TrimSpace(target), " ", "_")
	for _, group := range client.Groups() {
		if strings.EqualFold(group, normalized) {
			return true
		}
	}
	return false
}

// Disconnect tears down the current connection.
func (c *CLI) Disconnect() error {
	if err := c.client.Disconnect(); err != nil {
		return err
	}
	fmt.Println(c.client.Confirmation())
	return nil
}

// Countries prints the available countries.
func (c *CLI) Countries() error {
	return c.printList("countries", c.client.Countries())
}

// Groups prints the available server groups.
func (c *CLI) Groups() error {
	return c.printList("groups", c.client.Groups())
}

// Cities prints the available cities in a country.
func (c *CLI) Cities(country string) error {
	return c.printList("cities", c.client.Cities(country))
}

func (c *CLI) printList(what string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("no %s available; is the client logged in?", what)
	}
	for _, name := range names {
		fmt.Println(strings.ReplaceAll(name, "_", " "))
	}
	return nil
}

// Settings prints the current client settings.
func (c *CLI) Settings() error {
	settings := c.client.CurrentSettings()
	if len(settings) == 0 {
		return fmt.Errorf("could not read client settings")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, setting := range nordvpn.AllSettings {
		value, known := settings[setting]
		if !known {
			continue
		}
		switch setting.Kind() {
		case nordvpn.KindString:
			fmt.Fprintf(w, "%s:\t%s\n", setting.DisplayName(), value.Mode)
		default:
			state := "disabled"
			if value.Enabled {
				state = "enabled"
			}
			fmt.Fprintf(w, "%s:\t%s\n", setting.DisplayName(), state)
		}
	}
	return w.Flush()
}

// History prints the most recent connection events.
func (c *CLI) History(limit int) error {
	if c.store == nil {
		return fmt.Errorf("history is disabled in the configuration")
	}

	events, err := c.store.Recent(limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No recorded events.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tEVENT\tDETAIL")
	for _, event := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			event.Timestamp.Format("2006-01-02 15:04"), event.Kind, event.Detail)
	}
	return w.Flush()
}

// Login prompts for account credentials and logs the client in. Stored
// credentials are reused unless the prompt is answered.
func (c *CLI) Login() error {
	username, password, err := keyring.Account()
	if err == nil {
		fmt.Printf("Using stored credentials for %s.\n", username)
	} else {
		username, password, err = promptCredentials()
		if err != nil {
			return err
		}
	}

	if err := c.client.Login(username, password); err != nil {
		return err
	}
	fmt.Println("Logged in.")

	if err := keyring.StoreAccount(username, password); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not store credentials: %v\n", err)
	}
	return nil
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	password := string(passwordBytes)
	if username == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return username, password, nil
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`NordVPN Indicator - Command Line Interface

Usage:
  nordvpn-indicator [OPTIONS]

Options:
  --version           Show version and exit
  --verbose           Enable verbose logging
  --status            Show current VPN status
  --connect TARGET    Connect: 'auto', a country, or a server group
  --disconnect        Disconnect from VPN
  --countries         List available countries
  --cities COUNTRY    List available cities in a country
  --groups            List available server groups
  --settings          Show current client settings
  --history           Show recent connection events
  --login             Log in to your NordVPN account
  --tui               Open the terminal dashboard
  --help              Show this help message

Examples:
  nordvpn-indicator --status
  nordvpn-indicator --connect auto
  nordvpn-indicator --connect "United States"
  nordvpn-indicator --disconnect
  nordvpn-indicator --tui

Notes:
  - Requires the nordvpn client to be installed
  - Run without options to launch the tray indicator`)
}
