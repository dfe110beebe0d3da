// Package ui provides the desktop surface of NordVPN Indicator.
// This file contains the notification system for connection events.
package ui

import (
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"

	"nordvpn-indicator/common"
)

// NotificationType represents the type of notification.
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// Notification represents a system notification.
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

var (
	sessionBusOnce sync.Once
	sessionBus     *dbus.Conn
)

// notificationBus lazily connects to the session bus. A failed
// connection is remembered as nil; callers fall back to notify-send.
func notificationBus() *dbus.Conn {
	sessionBusOnce.Do(func() {
		conn, err := dbus.SessionBus()
		if err != nil {
			common.LogWarn("session bus unavailable, using notify-send: %v", err)
			return
		}
		sessionBus = conn
	})
	return sessionBus
}

// ShowNotification displays a desktop notification. It talks to
// org.freedesktop.Notifications over the session bus and falls back to
// the notify-send binary when D-Bus is unavailable.
func ShowNotification(n Notification) {
	icon := n.Icon
	if icon == "" {
		switch n.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = "network-vpn"
		}
	}

	if conn := notificationBus(); conn != nil {
		err := notifyDBus(conn, icon, n)
		if err == nil {
			return
		}
		common.LogWarn("D-Bus notification failed: %v", err)
	}
	notifySendFallback(icon, n)
}

func notifyDBus(conn *dbus.Conn, icon string, n Notification) error {
	expireTimeout := int32(5000)
	hints := map[string]dbus.Variant{}
	if n.Type == NotificationError {
		hints["urgency"] = dbus.MakeVariant(byte(2))
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		common.AppName,    // app_name
		uint32(0),         // replaces_id
		icon,              // app_icon
		n.Title,           // summary
		n.Message,         // body
		[]string{},        // actions
		hints,             // hints
		expireTimeout)     // expire_timeout
	return call.Err
}

func notifySendFallback(icon string, n Notification) {
	urgency := "normal"
	switch n.Type {
	case NotificationError:
		urgency = "critical"
	case NotificationInfo, NotificationSuccess:
		urgency = "low"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+icon,
		"--urgency="+urgency,
		n.Title,
		n.Message,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("notify-send failed: %v", err)
	}
}

// NotifyConnected shows a notification when the VPN connects.
func NotifyConnected(confirmation string) {
	ShowNotification(Notification{
		Title:   "VPN Connected",
		Message: confirmation,
		Type:    NotificationSuccess,
		Icon:    "network-vpn",
	})
}

// NotifyDisconnected shows a notification when the VPN disconnects.
func NotifyDisconnected(confirmation string) {
	ShowNotification(Notification{
		Title:   "VPN Disconnected",
		Message: confirmation,
		Type:    NotificationInfo,
		Icon:    "network-vpn-disconnected",
	})
}

// NotifyWarning shows a notification for client warnings, like a
// pending login or an available update.
func NotifyWarning(message string) {
	ShowNotification(Notification{
		Title:   common.AppName,
		Message: message,
		Type:    NotificationWarning,
	})
}
