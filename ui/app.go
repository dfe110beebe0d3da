package ui

import (
	"strings"
	"sync"
	"time"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"nordvpn-indicator/common"
	"nordvpn-indicator/config"
	"nordvpn-indicator/history"
	"nordvpn-indicator/nordvpn"
)

// Application glues the tray indicator, the VPN client, and the
// periodic status refresh together. There is no main window; the GTK
// application exists for the settings and login windows and to keep the
// process alive.
type Application struct {
	gtkApp  *gtk.Application
	client  *nordvpn.Client
	config  *config.Config
	store   *history.Store
	tray    *TrayIndicator
	version string

	refreshNow chan struct{}
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewApplication creates the application around an already constructed
// client. The history store may be nil when history is disabled.
func NewApplication(version string, client *nordvpn.Client, cfg *config.Config, store *history.Store) *Application {
	gtkApp := gtk.NewApplication(common.AppID, gio.ApplicationFlagsNone)

	app := &Application{
		gtkApp:     gtkApp,
		client:     client,
		config:     cfg,
		store:      store,
		version:    version,
		refreshNow: make(chan struct{}, 1),
		stop:       make(chan struct{}),
	}

	client.SetOnChange(app.onClientChange)
	gtkApp.ConnectActivate(app.onActivate)

	return app
}

// Run runs the application until Quit.
func (a *Application) Run(args []string) int {
	return a.gtkApp.Run(args)
}

// onActivate is called when the application is activated.
func (a *Application) onActivate() {
	// No main window; hold the application open for the tray.
	a.gtkApp.Hold()

	a.applyTheme(a.config.Theme)

	a.tray = NewTrayIndicator(a)
	go a.tray.Run()
	go a.refreshLoop()

	common.LogInfo("%s %s started, refreshing every %s",
		common.AppName, a.version, a.config.RefreshInterval())
}

// refreshLoop periodically re-checks the VPN status. The next wait is
// armed only after the previous check and redraw finish, so at most one
// status command is ever in flight.
func (a *Application) refreshLoop() {
	a.client.StatusCheck()
	a.refreshTray()

	for {
		select {
		case <-a.stop:
			return
		case <-a.refreshNow:
		case <-time.After(a.config.RefreshInterval()):
		}

		a.client.StatusCheck()
		a.refreshTray()
	}
}

// RefreshNow asks the refresh loop for an immediate status check. A
// check already pending is enough; extra requests are dropped.
func (a *Application) RefreshNow() {
	select {
	case a.refreshNow <- struct{}{}:
	default:
	}
}

func (a *Application) refreshTray() {
	if a.tray != nil {
		a.tray.Refresh()
	}
}

// ConnectFastest connects to the fastest available server.
func (a *Application) ConnectFastest() {
	if err := a.client.Connect(); err != nil {
		common.LogWarn("quick connect failed: %v", err)
	}
	a.RefreshNow()
}

// ConnectCountry connects to the fastest server in a country.
func (a *Application) ConnectCountry(country string) {
	if err := a.client.ConnectCountry(country); err != nil {
		common.LogWarn("connect to %s failed: %v", country, err)
	}
	a.RefreshNow()
}

// ConnectGroup connects to a server group.
func (a *Application) ConnectGroup(group string) {
	if err := a.client.ConnectGroup(group); err != nil {
		common.LogWarn("connect to group %s failed: %v", group, err)
	}
	a.RefreshNow()
}

// DisconnectVPN tears down the current connection.
func (a *Application) DisconnectVPN() {
	if err := a.client.Disconnect(); err != nil {
		common.LogWarn("disconnect failed: %v", err)
	}
	a.RefreshNow()
}

// onClientChange fires after every confirmed connect, disconnect, or
// detected warning. It runs with the client lock held, so the actual
// notification goes to another goroutine.
func (a *Application) onClientChange(message string, connected bool) {
	if !a.config.ShowNotifications {
		return
	}
	go func() {
		switch {
		case strings.HasPrefix(message, "You are now connected"):
			NotifyConnected(message)
		case strings.HasPrefix(message, "You have been disconnected"):
			NotifyDisconnected(message)
		default:
			NotifyWarning(message)
		}
	}()
}

// applyTheme applies the configured theme preference.
// Supported values: "auto" (system default), "light", "dark".
func (a *Application) applyTheme(theme string) {
	settings := gtk.SettingsGetDefault()
	if settings == nil {
		return
	}

	switch theme {
	case "light":
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", false)
	case "dark":
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", true)
	default:
		// Follow the system color scheme.
	}
}

// Quit stops the refresh loop, closes the history store, and exits.
func (a *Application) Quit() {
	a.stopOnce.Do(func() {
		close(a.stop)
		if a.store != nil {
			a.store.Close()
		}
	})
	a.gtkApp.Quit()
}
