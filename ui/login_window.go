// Package ui provides the desktop surface of NordVPN Indicator.
// This file contains the account login window.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"nordvpn-indicator/common"
	"nordvpn-indicator/keyring"
)

// showLoginWindow builds and presents the account login window. Must
// run on the GTK main thread.
func (a *Application) showLoginWindow() {
	window := gtk.NewWindow()
	window.SetTitle("Log In - " + common.AppName)
	window.SetDefaultSize(400, 320)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	contentBox := gtk.NewBox(gtk.OrientationVertical, 8)
	contentBox.SetMarginTop(24)
	contentBox.SetMarginBottom(12)
	contentBox.SetMarginStart(24)
	contentBox.SetMarginEnd(24)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	headerIcon := gtk.NewImage()
	headerIcon.SetFromIconName("network-vpn-symbolic")
	headerIcon.SetPixelSize(28)
	headerBox.Append(headerIcon)

	titleLabel := gtk.NewLabel("NordVPN Account")
	titleLabel.AddCSSClass("title-2")
	headerBox.Append(titleLabel)
	contentBox.Append(headerBox)

	separator := gtk.NewSeparator(gtk.OrientationHorizontal)
	separator.SetMarginTop(12)
	separator.SetMarginBottom(12)
	contentBox.Append(separator)

	usernameLabel := gtk.NewLabel("Email")
	usernameLabel.SetXAlign(0)
	usernameLabel.AddCSSClass("dim-label")
	contentBox.Append(usernameLabel)

	usernameEntry := gtk.NewEntry()
	usernameEntry.SetPlaceholderText("you@example.com")
	contentBox.Append(usernameEntry)

	passwordLabel := gtk.NewLabel("Password")
	passwordLabel.SetXAlign(0)
	passwordLabel.AddCSSClass("dim-label")
	passwordLabel.SetMarginTop(8)
	contentBox.Append(passwordLabel)

	passwordEntry := gtk.NewPasswordEntry()
	passwordEntry.SetShowPeekIcon(true)
	contentBox.Append(passwordEntry)

	saveCheck := gtk.NewCheckButtonWithLabel("Remember credentials")
	saveCheck.SetMarginTop(8)
	contentBox.Append(saveCheck)

	// Prefill from the stored account when one exists.
	if storedUsername, storedPassword, err := keyring.Account(); err == nil {
		usernameEntry.SetText(storedUsername)
		passwordEntry.SetText(storedPassword)
		saveCheck.SetActive(true)
	}

	mainBox.Append(contentBox)

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

	loginBtn := gtk.NewButtonWithLabel("Log In")
	loginBtn.AddCSSClass("suggested-action")
	loginBtn.ConnectClicked(func() {
		username := usernameEntry.Text()
		password := passwordEntry.Text()
		if username == "" || password == "" {
			return
		}
		remember := saveCheck.Active()
		window.Close()

		go a.loginAccount(username, password, remember)
	})
	buttonBox.Append(loginBtn)

	passwordEntry.ConnectActivate(func() {
		loginBtn.Activate()
	})

	mainBox.Append(buttonBox)
	window.SetChild(mainBox)
	window.Show()

	usernameEntry.GrabFocus()
}

// loginAccount performs the login off the GTK thread and refreshes the
// status afterwards.
func (a *Application) loginAccount(username, password string, remember bool) {
	if err := a.client.Login(username, password); err != nil {
		common.LogWarn("login failed: %v", err)
		if a.config.ShowNotifications {
			NotifyWarning("Login failed. Check your credentials and try again.")
		}
		return
	}

	if remember {
		if err := keyring.StoreAccount(username, password); err != nil {
			common.LogWarn("storing credentials failed: %v", err)
		}
	}

	if a.config.ShowNotifications {
		ShowNotification(Notification{
			Title:   common.AppName,
			Message: "Logged in to your NordVPN account.",
			Type:    NotificationSuccess,
		})
	}
	a.RefreshNow()
}
