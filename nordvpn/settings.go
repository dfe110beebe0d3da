package nordvpn

import (
	"strconv"
	"strings"
)

// Setting identifies one configurable option of the external client.
type Setting int

const (
	Protocol Setting = iota
	KillSwitch
	CyberSec
	Obfuscate
	AutoConnect
	DNS
	Notify
)

// Kind describes how a setting's value is represented.
type Kind int

const (
	// KindBool settings are reported as "enabled"/"disabled" and set
	// with true/false.
	KindBool Kind = iota
	// KindString settings carry a literal mode value, like "UDP".
	KindString
)

// settingInfo is the registry of known settings: the exact display
// label the client prints in its settings output, and the value kind.
var settingInfo = map[Setting]struct {
	name string
	kind Kind
}{
	Protocol:    {"Protocol", KindString},
	KillSwitch:  {"Kill Switch", KindBool},
	CyberSec:    {"CyberSec", KindBool},
	Obfuscate:   {"Obfuscate", KindBool},
	AutoConnect: {"Auto-connect", KindString},
	DNS:         {"DNS", KindBool},
	Notify:      {"Notify", KindBool},
}

// AllSettings lists every known setting in display order.
var AllSettings = []Setting{Protocol, KillSwitch, CyberSec, Obfuscate, AutoConnect, DNS, Notify}

var settingByName = func() map[string]Setting {
	byName := make(map[string]Setting, len(settingInfo))
	for setting, info := range settingInfo {
		byName[info.name] = setting
	}
	return byName
}()

// DisplayName returns the label the client uses for this setting.
func (s Setting) DisplayName() string {
	return settingInfo[s].name
}

// Kind returns how this setting's value is represented.
func (s Setting) Kind() Kind {
	return settingInfo[s].kind
}

// Arg returns the spelling the client expects on its command line:
// the display name with spaces and hyphens removed, lower-cased.
// "Kill Switch" becomes "killswitch", "Auto-connect" becomes
// "autoconnect".
func (s Setting) Arg() string {
	name := strings.NewReplacer(" ", "", "-", "").Replace(s.DisplayName())
	return strings.ToLower(name)
}

func (s Setting) String() string {
	return s.DisplayName()
}

// Value holds one parsed setting value. Enabled is meaningful for
// KindBool settings, Mode for KindString settings.
type Value struct {
	Kind    Kind
	Enabled bool
	Mode    string
}

// BoolValue wraps a switch state.
func BoolValue(enabled bool) Value {
	return Value{Kind: KindBool, Enabled: enabled}
}

// StringValue wraps a literal mode value.
func StringValue(mode string) Value {
	return Value{Kind: KindString, Mode: mode}
}

// ParseSettings scrapes the client's `settings` output into a map of
// recognized settings. Each line is split on its first colon; labels
// shorter than two characters (decoration and spinner noise) and labels
// not in the registry are skipped. Boolean settings read "enabled" as
// true and anything else as false; string settings keep the literal
// value.
func ParseSettings(raw string) map[Setting]Value {
	settings := make(map[Setting]Value)
	for _, line := range strings.Split(raw, "\n") {
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if len(name) < 2 {
			continue
		}
		setting, known := settingByName[name]
		if !known {
			continue
		}
		if setting.Kind() == KindString {
			settings[setting] = StringValue(value)
		} else {
			settings[setting] = BoolValue(value == "enabled")
		}
	}
	return settings
}

// FormatSetArgs translates a setting and its desired value into the
// argument list for the client's `set` command (without the leading
// "set").
//
// Auto-connect gets special treatment: "Off" maps to false, "Automatic"
// to true, and any other mode becomes "on <target>" with the target
// lower-cased. Protocol passes its mode through as-is; booleans render
// as true/false.
func FormatSetArgs(setting Setting, value Value) []string {
	return append([]string{setting.Arg()}, formatValue(setting, value)...)
}

func formatValue(setting Setting, value Value) []string {
	switch setting {
	case AutoConnect:
		switch value.Mode {
		case "Off":
			return []string{"false"}
		case "Automatic":
			return []string{"true"}
		default:
			return []string{"on", strings.ToLower(value.Mode)}
		}
	case Protocol:
		return []string{value.Mode}
	default:
		return []string{strconv.FormatBool(value.Enabled)}
	}
}
