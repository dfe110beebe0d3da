// Package ui provides the desktop surface of NordVPN Indicator.
// This file contains the client settings window.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"nordvpn-indicator/common"
	"nordvpn-indicator/nordvpn"
)

// Boolean settings shown as switches, in display order.
var switchSettings = []nordvpn.Setting{
	nordvpn.KillSwitch,
	nordvpn.CyberSec,
	nordvpn.Obfuscate,
	nordvpn.DNS,
	nordvpn.Notify,
}

// showSettingsWindow builds and presents the settings window. Must run
// on the GTK main thread; current holds the freshly fetched client
// settings.
func (a *Application) showSettingsWindow(current map[nordvpn.Setting]nordvpn.Value) {
	window := gtk.NewWindow()
	window.SetTitle("Settings - " + common.AppName)
	window.SetDefaultSize(common.SettingsWindowWidth, common.SettingsWindowHeight)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	contentBox := gtk.NewBox(gtk.OrientationVertical, 12)
	contentBox.SetMarginTop(24)
	contentBox.SetMarginBottom(12)
	contentBox.SetMarginStart(24)
	contentBox.SetMarginEnd(24)

	titleLabel := gtk.NewLabel("NordVPN Settings")
	titleLabel.AddCSSClass("title-2")
	titleLabel.SetXAlign(0)
	contentBox.Append(titleLabel)

	infoLabel := gtk.NewLabel("Changes are applied through the NordVPN client")
	infoLabel.AddCSSClass("dim-label")
	infoLabel.SetXAlign(0)
	infoLabel.SetMarginBottom(8)
	contentBox.Append(infoLabel)

	separator := gtk.NewSeparator(gtk.OrientationHorizontal)
	separator.SetMarginBottom(8)
	contentBox.Append(separator)

	// Protocol dropdown.
	protocolRow := gtk.NewBox(gtk.OrientationHorizontal, 12)
	protocolLabel := gtk.NewLabel(nordvpn.Protocol.DisplayName())
	protocolLabel.SetXAlign(0)
	protocolLabel.SetHExpand(true)
	protocolRow.Append(protocolLabel)

	protocolDrop := gtk.NewDropDown(gtk.NewStringList([]string{"UDP", "TCP"}), nil)
	if current[nordvpn.Protocol].Mode == "TCP" {
		protocolDrop.SetSelected(1)
	}
	protocolRow.Append(protocolDrop)
	contentBox.Append(protocolRow)

	// Boolean settings as switches.
	switches := make(map[nordvpn.Setting]*gtk.Switch, len(switchSettings))
	for _, setting := range switchSettings {
		row := gtk.NewBox(gtk.OrientationHorizontal, 12)

		label := gtk.NewLabel(setting.DisplayName())
		label.SetXAlign(0)
		label.SetHExpand(true)
		row.Append(label)

		toggle := gtk.NewSwitch()
		toggle.SetActive(current[setting].Enabled)
		toggle.SetVAlign(gtk.AlignCenter)
		row.Append(toggle)

		contentBox.Append(row)
		switches[setting] = toggle
	}

	// Auto-connect target.
	autoLabel := gtk.NewLabel(nordvpn.AutoConnect.DisplayName())
	autoLabel.SetXAlign(0)
	autoLabel.SetMarginTop(8)
	contentBox.Append(autoLabel)

	autoEntry := gtk.NewEntry()
	autoEntry.SetPlaceholderText("Off, Automatic, or a country name")
	autoEntry.SetText(current[nordvpn.AutoConnect].Mode)
	contentBox.Append(autoEntry)

	mainBox.Append(contentBox)

	// Buttons.
	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)
	buttonBox.SetMarginBottom(24)
	buttonBox.SetMarginStart(24)
	buttonBox.SetMarginEnd(24)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		window.Close()
	})
	buttonBox.Append(cancelBtn)

	applyBtn := gtk.NewButtonWithLabel("Apply")
	applyBtn.AddCSSClass("suggested-action")
	applyBtn.ConnectClicked(func() {
		desired := make(map[nordvpn.Setting]nordvpn.Value)

		protocol := "UDP"
		if protocolDrop.Selected() == 1 {
			protocol = "TCP"
		}
		desired[nordvpn.Protocol] = nordvpn.StringValue(protocol)

		for setting, toggle := range switches {
			desired[setting] = nordvpn.BoolValue(toggle.Active())
		}

		if target := autoEntry.Text(); target != "" {
			desired[nordvpn.AutoConnect] = nordvpn.StringValue(target)
		}

		window.Close()
		go a.applySettings(current, desired)
	})
	buttonBox.Append(applyBtn)

	mainBox.Append(buttonBox)
	window.SetChild(mainBox)
	window.Show()
}

// applySettings issues one `set` command per changed setting, then asks
// for a fresh status. Runs off the GTK thread.
func (a *Application) applySettings(current, desired map[nordvpn.Setting]nordvpn.Value) {
	for _, setting := range nordvpn.AllSettings {
		want, requested := desired[setting]
		if !requested {
			continue
		}
		if have, known := current[setting]; known && have == want {
			continue
		}
		if err := a.client.ApplySetting(setting, want); err != nil {
			common.LogWarn("applying %s failed: %v", setting.DisplayName(), err)
		}
	}
	a.RefreshNow()
}
