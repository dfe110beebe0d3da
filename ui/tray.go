// Package ui provides the desktop surface of NordVPN Indicator.
// This file contains the system tray indicator functionality.
package ui

import (
	"fmt"
	"strings"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"nordvpn-indicator/common"
	"nordvpn-indicator/nordvpn"
)

// Pre-generated icons for performance.
var (
	iconConnected    = GenerateConnectedIcon()
	iconDisconnected = GenerateDisconnectedIcon()
	iconWaiting      = GenerateWaitingIcon()
)

// TrayIndicator manages the system tray icon and menu. The menu is the
// whole user interface: status details, connect targets, settings, and
// account login all hang off it.
type TrayIndicator struct {
	app *Application

	statusItem   *systray.MenuItem
	serverItem   *systray.MenuItem
	locationItem *systray.MenuItem
	ipItem       *systray.MenuItem
	uptimeItem   *systray.MenuItem
	warningItem  *systray.MenuItem

	connectItem    *systray.MenuItem
	disconnectItem *systray.MenuItem
	loginItem      *systray.MenuItem
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{app: app}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(iconWaiting)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName + " - Waiting")

	// Status section. All items are display-only.
	t.statusItem = systray.AddMenuItem("Status: Waiting", "Current VPN status")
	t.statusItem.Disable()

	t.serverItem = systray.AddMenuItem("    Server: Unknown", "Current server")
	t.serverItem.Disable()
	t.serverItem.Hide()

	t.locationItem = systray.AddMenuItem("    Location: Unknown", "Country and city")
	t.locationItem.Disable()
	t.locationItem.Hide()

	t.ipItem = systray.AddMenuItem("    IP: Unknown", "Your new IP")
	t.ipItem.Disable()
	t.ipItem.Hide()

	t.uptimeItem = systray.AddMenuItem("    Uptime: Unknown", "Connection duration")
	t.uptimeItem.Disable()
	t.uptimeItem.Hide()

	t.warningItem = systray.AddMenuItem("", "Client warning")
	t.warningItem.Disable()
	t.warningItem.Hide()

	systray.AddSeparator()

	// Actions section.
	t.connectItem = systray.AddMenuItem("Quick Connect", "Connect to the fastest server")
	go func() {
		for range t.connectItem.ClickedCh {
			go t.app.ConnectFastest()
		}
	}()

	t.disconnectItem = systray.AddMenuItem("Disconnect", "Disconnect from VPN")
	t.disconnectItem.Hide()
	go func() {
		for range t.disconnectItem.ClickedCh {
			go t.app.DisconnectVPN()
		}
	}()

	countriesItem := systray.AddMenuItem("Connect to Country", "Pick a country")
	groupsItem := systray.AddMenuItem("Connect to Group", "Pick a server group")

	refreshItem := systray.AddMenuItem("Check Status Now", "Refresh the VPN status")
	go func() {
		for range refreshItem.ClickedCh {
			t.app.RefreshNow()
		}
	}()

	systray.AddSeparator()

	// App section.
	t.loginItem = systray.AddMenuItem("Log In...", "Log in to your account")
	t.loginItem.Hide()
	go func() {
		for range t.loginItem.ClickedCh {
			glib.IdleAdd(func() {
				t.app.showLoginWindow()
			})
		}
	}()

	settingsItem := systray.AddMenuItem("Settings...", "Change client settings")
	go func() {
		for range settingsItem.ClickedCh {
			// Fetch off the GTK thread, present on it.
			current := t.app.client.CurrentSettings()
			glib.IdleAdd(func() {
				t.app.showSettingsWindow(current)
			})
		}
	}()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			t.app.Quit()
			systray.Quit()
		}
	}()

	// The target lists come from the external client, so this blocks
	// on first use; the menu fills in as results arrive.
	go t.populateTargets(countriesItem, groupsItem)

	t.Refresh()
}

// onExit is called when the systray is about to exit. The VPN tunnel is
// owned by the system client and stays up; only the indicator goes
// away.
func (t *TrayIndicator) onExit() {
	common.LogInfo("tray indicator stopped")
}

// populateTargets fills the country and group submenus from the
// client's own lists.
func (t *TrayIndicator) populateTargets(countriesItem, groupsItem *systray.MenuItem) {
	countries := t.app.client.Countries()
	if len(countries) == 0 {
		unavailable := countriesItem.AddSubMenuItem("(unavailable)", "")
		unavailable.Disable()
	}
	for _, country := range countries {
		name := country
		item := countriesItem.AddSubMenuItem(displayName(name), "Connect to "+displayName(name))
		go func() {
			for range item.ClickedCh {
				go t.app.ConnectCountry(name)
			}
		}()
	}

	groups := t.app.client.Groups()
	if len(groups) == 0 {
		unavailable := groupsItem.AddSubMenuItem("(unavailable)", "")
		unavailable.Disable()
	}
	for _, group := range groups {
		name := group
		item := groupsItem.AddSubMenuItem(displayName(name), "Connect to "+displayName(name))
		go func() {
			for range item.ClickedCh {
				go t.app.ConnectGroup(name)
			}
		}()
	}
}

// displayName renders a client list token for humans:
// "United_States" becomes "United States".
func displayName(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}

// Refresh redraws the tray from the current status snapshot. Safe to
// call from any goroutine; it only touches systray, which is
// thread-safe.
func (t *TrayIndicator) Refresh() {
	if t.statusItem == nil {
		return
	}

	snapshot := t.app.client.Snapshot()

	switch snapshot.State {
	case nordvpn.StatusConnected:
		systray.SetIcon(iconConnected)
		systray.SetTooltip(fmt.Sprintf("%s - Connected to %s", common.AppName, snapshot.Country))
	case nordvpn.StatusDisconnected:
		systray.SetIcon(iconDisconnected)
		systray.SetTooltip(common.AppName + " - Disconnected")
	default:
		systray.SetIcon(iconWaiting)
		systray.SetTooltip(common.AppName + " - Waiting")
	}

	t.statusItem.SetTitle("Status: " + snapshot.State.String())

	connected := snapshot.State == nordvpn.StatusConnected
	setDetail(t.serverItem, "    Server: "+snapshot.Server, connected)
	setDetail(t.locationItem, fmt.Sprintf("    Location: %s, %s", snapshot.Country, snapshot.City), connected)
	setDetail(t.ipItem, "    IP: "+snapshot.IP, connected)
	setDetail(t.uptimeItem, "    Uptime: "+snapshot.Uptime, connected)

	warnings := snapshot.Warnings()
	if len(warnings) > 0 {
		t.warningItem.SetTitle("⚠ " + warnings[0])
		t.warningItem.Show()
	} else {
		t.warningItem.Hide()
	}

	if hasWarning(warnings, nordvpn.WarnLoginRequired) {
		t.loginItem.Show()
	} else {
		t.loginItem.Hide()
	}

	if connected {
		t.connectItem.Hide()
		t.disconnectItem.Show()
	} else {
		t.connectItem.Show()
		t.disconnectItem.Hide()
	}
}

func setDetail(item *systray.MenuItem, title string, visible bool) {
	item.SetTitle(title)
	if visible {
		item.Show()
	} else {
		item.Hide()
	}
}

func hasWarning(warnings []string, warning string) bool {
	for _, w := range warnings {
		if w == warning {
			return true
		}
	}
	return false
}
