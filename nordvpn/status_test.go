package nordvpn

import (
	"reflect"
	"strings"
	"testing"
)

const connectedOutput = `Status: Connected
Current server: fr443.nordvpn.com
Country: France
City: Paris
Your new IP: 185.93.2.45
Current protocol: UDP
Transfer: 1.2 MiB received, 0.4 MiB sent
Uptime: 5 minutes`

func TestConnectionStatus_String(t *testing.T) {
	tests := []struct {
		state    ConnectionStatus
		expected string
	}{
		{StatusConnected, "Connected"},
		{StatusDisconnected, "Disconnected"},
		{StatusWaiting, "Waiting"},
		{ConnectionStatus(42), "Waiting"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewStatus_Defaults(t *testing.T) {
	status := NewStatus()

	if status.State != StatusWaiting {
		t.Errorf("new snapshot state = %v, want Waiting", status.State)
	}

	for name, value := range map[string]string{
		"Raw":      status.Raw,
		"Server":   status.Server,
		"Country":  status.Country,
		"City":     status.City,
		"IP":       status.IP,
		"Protocol": status.Protocol,
		"Transfer": status.Transfer,
		"Uptime":   status.Uptime,
	} {
		if value != UnknownValue {
			t.Errorf("%s = %q, want %q", name, value, UnknownValue)
		}
	}

	if status.HasWarnings() {
		t.Error("new snapshot should have no warnings")
	}
}

func TestStatus_Update_Connected(t *testing.T) {
	status := NewStatus()
	status.Update(connectedOutput)

	if status.State != StatusConnected {
		t.Fatalf("State = %v, want Connected", status.State)
	}
	if status.Server != "fr443.nordvpn.com" {
		t.Errorf("Server = %q", status.Server)
	}
	if status.Country != "France" {
		t.Errorf("Country = %q", status.Country)
	}
	if status.City != "Paris" {
		t.Errorf("City = %q", status.City)
	}
	if status.IP != "185.93.2.45" {
		t.Errorf("IP = %q", status.IP)
	}
	if status.Protocol != "UDP" {
		t.Errorf("Protocol = %q", status.Protocol)
	}
	if status.Transfer != "1.2 MiB received, 0.4 MiB sent" {
		t.Errorf("Transfer = %q", status.Transfer)
	}
	if status.Uptime != "5 minutes" {
		t.Errorf("Uptime = %q", status.Uptime)
	}
	if status.Raw != connectedOutput {
		t.Errorf("Raw should hold the unparsed output")
	}
}

func TestStatus_Update_Disconnected(t *testing.T) {
	status := NewStatus()
	status.Update(connectedOutput)
	status.Update("Status: Disconnected")

	if status.State != StatusDisconnected {
		t.Fatalf("State = %v, want Disconnected", status.State)
	}
	// Fields without a label fall back to Unknown, they never keep
	// stale values from the previous parse.
	if status.Server != UnknownValue {
		t.Errorf("Server = %q, want %q", status.Server, UnknownValue)
	}
	if status.Country != UnknownValue {
		t.Errorf("Country = %q, want %q", status.Country, UnknownValue)
	}
}

func TestStatus_Update_Connecting(t *testing.T) {
	status := NewStatus()
	status.Update("Status: Connecting")

	if status.State != StatusWaiting {
		t.Errorf("State = %v, want Waiting while connecting", status.State)
	}
}

func TestStatus_Update_MissingStatusLabel(t *testing.T) {
	status := NewStatus()
	status.Update(connectedOutput)
	status.Update("Country: Germany\nCity: Berlin")

	if status.State != StatusWaiting {
		t.Errorf("State = %v, want Waiting when Status label is missing", status.State)
	}
	// Without a parsable state the other fields stay untouched.
	if status.Country != "France" {
		t.Errorf("Country = %q, want the previous value kept", status.Country)
	}
}

func TestStatus_Update_UnrecognizedStateValue(t *testing.T) {
	status := NewStatus()
	status.Update(connectedOutput)
	status.Update("Status: Reconnecting")

	if status.State != StatusWaiting {
		t.Errorf("State = %v, want Waiting for unrecognized value", status.State)
	}
	if status.Server != "fr443.nordvpn.com" {
		t.Errorf("Server = %q, want the previous value kept", status.Server)
	}
}

func TestStatus_Update_FirstOccurrenceWins(t *testing.T) {
	status := NewStatus()
	status.Update("Status: Connected\nCountry: France\nCountry: Germany")

	if status.Country != "France" {
		t.Errorf("Country = %q, want the first occurrence", status.Country)
	}
}

func TestStatus_Update_EmptyOutput(t *testing.T) {
	status := NewStatus()
	status.Update("")

	if status.State != StatusWaiting {
		t.Errorf("State = %v, want Waiting for empty output", status.State)
	}
}

func TestStatus_Warnings(t *testing.T) {
	status := NewStatus()

	status.AddWarning("b warning")
	status.AddWarning("a warning")
	status.AddWarning("b warning")

	warnings := status.Warnings()
	if !reflect.DeepEqual(warnings, []string{"a warning", "b warning"}) {
		t.Errorf("Warnings() = %v, want deduplicated and sorted", warnings)
	}

	status.ClearWarnings()
	if status.HasWarnings() {
		t.Error("warnings should be gone after ClearWarnings")
	}
}

func TestStatus_Update_WarningsSuppressParsing(t *testing.T) {
	status := NewStatus()
	status.Update(connectedOutput)
	status.AddWarning(WarnLoginRequired)

	status.Update("Status: Disconnected")

	if status.State != StatusWaiting {
		t.Errorf("State = %v, want Waiting while warnings are active", status.State)
	}
	if status.Country != "France" {
		t.Errorf("Country = %q, fields must not change while warnings are active", status.Country)
	}
	if !strings.HasPrefix(status.Raw, "Status: Disconnected") {
		t.Errorf("Raw = %q, want the original output first", status.Raw)
	}
	if !strings.Contains(status.Raw, WarnLoginRequired) {
		t.Errorf("Raw = %q, want the warning appended", status.Raw)
	}
}

func TestStatus_Update_WarningsAppendedSorted(t *testing.T) {
	status := NewStatus()
	status.AddWarning(WarnUpdateAvailable)
	status.AddWarning(WarnLoginRequired)

	status.Update("raw text")

	expected := "raw text\n" + WarnLoginRequired + "\n" + WarnUpdateAvailable
	if status.Raw != expected {
		t.Errorf("Raw = %q, want %q", status.Raw, expected)
	}
}

func TestStatus_Clone(t *testing.T) {
	status := NewStatus()
	status.Update(connectedOutput)
	status.AddWarning(WarnUpdateAvailable)

	copied := status.clone()
	status.AddWarning(WarnLoginRequired)

	if len(copied.Warnings()) != 1 {
		t.Error("clone should not share the warning set")
	}
	if copied.Country != "France" {
		t.Errorf("clone Country = %q", copied.Country)
	}
}
