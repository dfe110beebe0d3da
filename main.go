// Package main provides the entry point for NordVPN Indicator, a
// system tray applet for the NordVPN command-line client on Linux.
//
// Features:
//   - Tray icon reflecting the live connection state
//   - Quick connect, country and group selection from the tray menu
//   - Client settings window (protocol, kill switch, CyberSec, ...)
//   - Connection history stored locally
//   - Command-line interface and terminal dashboard
//
// Usage:
//
//	nordvpn-indicator [options]
//
// Environment:
//
//	The application requires the nordvpn client to be installed.
package main

import (
	"flag"
	"fmt"
	"os"

	"nordvpn-indicator/cli"
	"nordvpn-indicator/common"
	"nordvpn-indicator/config"
	"nordvpn-indicator/history"
	"nordvpn-indicator/nordvpn"
	"nordvpn-indicator/tui"
	"nordvpn-indicator/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	showStatus    = flag.Bool("status", false, "Show current VPN status")
	connectTarget = flag.String("connect", "", "Connect: 'auto', a country, or a server group")
	disconnectVPN = flag.Bool("disconnect", false, "Disconnect from VPN")
	listCountries = flag.Bool("countries", false, "List available countries")
	listCities    = flag.String("cities", "", "List available cities in a country")
	listGroups    = flag.Bool("groups", false, "List available server groups")
	showSettings  = flag.Bool("settings", false, "Show current client settings")
	showHistory   = flag.Bool("history", false, "Show recent connection events")
	doLogin       = flag.Bool("login", false, "Log in to your NordVPN account")
	openTUI       = flag.Bool("tui", false, "Open the terminal dashboard")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	// Initialize logger with structured logging and file output
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}
	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  3,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	cfg, err := config.Load()
	if err != nil {
		common.LogWarn("using default configuration: %v", err)
		cfg = config.DefaultConfig()
	}

	if !nordvpn.ClientInstalled(cfg.ClientPath) {
		common.LogError("the %s client is not installed", cfg.ClientPath)
		fmt.Fprintf(os.Stderr, "Error: the %s client is not installed or not in PATH.\n", cfg.ClientPath)
		os.Exit(1)
	}

	client := nordvpn.NewWithCommand(cfg.ClientPath)

	var store *history.Store
	if cfg.EnableHistory {
		store = openHistory()
		if store != nil {
			defer store.Close()
			client.SetRecorder(store)
		}
	}

	// Check if any CLI mode flag is set
	if *showStatus || *connectTarget != "" || *disconnectVPN ||
		*listCountries || *listCities != "" || *listGroups ||
		*showSettings || *showHistory || *doLogin {
		runCLI(client, store)
		return
	}

	if *openTUI {
		if err := tui.Run(client, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Start the GTK application (tray mode)
	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(appVersion, client, cfg, store)
	exitCode := app.Run(os.Args[:1])

	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	os.Exit(exitCode)
}

// openHistory opens the history store, pruning old events on startup.
// Failures disable history for this run instead of aborting.
func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		common.LogWarn("history disabled: %v", err)
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		common.LogWarn("history disabled: %v", err)
		return nil
	}
	if err := store.Prune(); err != nil {
		common.LogWarn("pruning history failed: %v", err)
	}
	return store
}

// runCLI handles command-line interface operations.
func runCLI(client *nordvpn.Client, store *history.Store) {
	cliApp := cli.New(client, store)

	var cliErr error
	switch {
	case *showStatus:
		cliErr = cliApp.Status()
	case *connectTarget != "":
		cliErr = cliApp.Connect(*connectTarget)
	case *disconnectVPN:
		cliErr = cliApp.Disconnect()
	case *listCountries:
		cliErr = cliApp.Countries()
	case *listCities != "":
		cliErr = cliApp.Cities(*listCities)
	case *listGroups:
		cliErr = cliApp.Groups()
	case *showSettings:
		cliErr = cliApp.Settings()
	case *showHistory:
		cliErr = cliApp.History(20)
	case *doLogin:
		cliErr = cliApp.Login()
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		os.Exit(1)
	}
}
