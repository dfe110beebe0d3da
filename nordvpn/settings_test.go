package nordvpn

import (
	"reflect"
	"testing"
)

func TestSetting_Arg(t *testing.T) {
	tests := []struct {
		setting  Setting
		expected string
	}{
		{Protocol, "protocol"},
		{KillSwitch, "killswitch"},
		{CyberSec, "cybersec"},
		{Obfuscate, "obfuscate"},
		{AutoConnect, "autoconnect"},
		{DNS, "dns"},
		{Notify, "notify"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.setting.Arg(); got != tt.expected {
				t.Errorf("Arg() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSetting_Kind(t *testing.T) {
	if Protocol.Kind() != KindString {
		t.Error("Protocol should be a string setting")
	}
	if AutoConnect.Kind() != KindString {
		t.Error("Auto-connect should be a string setting")
	}
	if KillSwitch.Kind() != KindBool {
		t.Error("Kill Switch should be a boolean setting")
	}
}

func TestParseSettings(t *testing.T) {
	raw := `-
\
Protocol: UDP
Kill Switch: disabled
CyberSec: enabled
Obfuscate: disabled
Auto-connect: disabled
DNS: disabled
Notify: enabled
Unrelated Thing: whatever`

	settings := ParseSettings(raw)

	expected := map[Setting]Value{
		Protocol:    StringValue("UDP"),
		KillSwitch:  BoolValue(false),
		CyberSec:    BoolValue(true),
		Obfuscate:   BoolValue(false),
		AutoConnect: StringValue("disabled"),
		DNS:         BoolValue(false),
		Notify:      BoolValue(true),
	}

	if !reflect.DeepEqual(settings, expected) {
		t.Errorf("ParseSettings() = %v, want %v", settings, expected)
	}
}

func TestParseSettings_SkipsShortLabelsAndNoise(t *testing.T) {
	settings := ParseSettings("x: junk\n: nothing\nnot a setting line\nDNS: enabled")

	expected := map[Setting]Value{DNS: BoolValue(true)}
	if !reflect.DeepEqual(settings, expected) {
		t.Errorf("ParseSettings() = %v, want %v", settings, expected)
	}
}

func TestParseSettings_Empty(t *testing.T) {
	if settings := ParseSettings(""); len(settings) != 0 {
		t.Errorf("ParseSettings(\"\") = %v, want empty map", settings)
	}
}

func TestFormatSetArgs(t *testing.T) {
	tests := []struct {
		name     string
		setting  Setting
		value    Value
		expected []string
	}{
		{"killswitch on", KillSwitch, BoolValue(true), []string{"killswitch", "true"}},
		{"cybersec off", CyberSec, BoolValue(false), []string{"cybersec", "false"}},
		{"protocol tcp", Protocol, StringValue("TCP"), []string{"protocol", "TCP"}},
		{"protocol udp", Protocol, StringValue("UDP"), []string{"protocol", "UDP"}},
		{"autoconnect off", AutoConnect, StringValue("Off"), []string{"autoconnect", "false"}},
		{"autoconnect automatic", AutoConnect, StringValue("Automatic"), []string{"autoconnect", "true"}},
		{"autoconnect country", AutoConnect, StringValue("France"), []string{"autoconnect", "on", "france"}},
		{"notify on", Notify, BoolValue(true), []string{"notify", "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSetArgs(tt.setting, tt.value)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FormatSetArgs() = %v, want %v", got, tt.expected)
			}
		})
	}
}
