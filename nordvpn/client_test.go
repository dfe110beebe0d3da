package nordvpn

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"nordvpn-indicator/common"
)

// fakeRunner replays canned output keyed by the joined argument list
// and records every invocation.
type fakeRunner struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (r *fakeRunner) Run(args ...string) (string, error) {
	key := strings.Join(args, " ")
	r.calls = append(r.calls, key)
	return r.responses[key], r.errs[key]
}

func TestClient_Connect_Confirmation(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect"] = "Connecting to France #443...\nYou are now connected to France #443 (fr443.nordvpn.com)!"

	client := New(runner)
	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if !client.Connected() {
		t.Error("client should report connected after confirmation")
	}
	if !strings.HasPrefix(client.Confirmation(), "You are now connected to France #443") {
		t.Errorf("Confirmation() = %q", client.Confirmation())
	}
}

func TestClient_Connect_TargetsUnderscored(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect United_States"] = "You are now connected to United States #9999"

	client := New(runner)
	if err := client.ConnectCountry("United States"); err != nil {
		t.Fatalf("ConnectCountry() error = %v", err)
	}

	if runner.calls[0] != "connect United_States" {
		t.Errorf("issued %q, want spaces replaced with underscores", runner.calls[0])
	}
}

func TestClient_ConnectGroup(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect --group Double_VPN"] = "You are now connected to Netherlands #512"

	client := New(runner)
	if err := client.ConnectGroup("Double_VPN"); err != nil {
		t.Fatalf("ConnectGroup() error = %v", err)
	}
	if !client.Connected() {
		t.Error("client should report connected")
	}
}

func TestClient_Connect_LoginWarning(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect"] = "Please enter your login details."

	client := New(runner)
	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if client.Connected() {
		t.Error("connection state must stay unresolved on a login banner")
	}
	snapshot := client.Snapshot()
	if !reflect.DeepEqual(snapshot.Warnings(), []string{WarnLoginRequired}) {
		t.Errorf("Warnings() = %v, want the login warning", snapshot.Warnings())
	}
}

func TestClient_Connect_UpdateWarning(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect"] = "A new version of NordVPN is available! Please update the application."

	client := New(runner)
	client.Connect()

	snapshot := client.Snapshot()
	if !reflect.DeepEqual(snapshot.Warnings(), []string{WarnUpdateAvailable}) {
		t.Errorf("Warnings() = %v, want the update warning", snapshot.Warnings())
	}
}

func TestClient_Connect_EmptyOutput(t *testing.T) {
	runner := newFakeRunner()
	runner.errs["connect"] = common.ErrCommandFailed

	client := New(runner)
	err := client.Connect()
	if !errors.Is(err, common.ErrCommandFailed) {
		t.Errorf("Connect() error = %v, want ErrCommandFailed", err)
	}
	if client.Connected() {
		t.Error("failed connect must not report connected")
	}
}

func TestClient_Disconnect(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect"] = "You are now connected to France #443"
	runner.responses["disconnect"] = "You have been disconnected."

	client := New(runner)
	client.Connect()
	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}

	if client.Connected() {
		t.Error("client should report disconnected after confirmation")
	}
	if !strings.HasPrefix(client.Confirmation(), "You have been disconnected") {
		t.Errorf("Confirmation() = %q", client.Confirmation())
	}
}

func TestClient_StatusCheck(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["status"] = connectedOutput

	client := New(runner)
	if err := client.StatusCheck(); err != nil {
		t.Fatalf("StatusCheck() error = %v", err)
	}

	snapshot := client.Snapshot()
	if snapshot.State != StatusConnected {
		t.Errorf("State = %v, want Connected", snapshot.State)
	}
	if !client.Connected() {
		t.Error("connected flag should follow the parsed state")
	}
}

func TestClient_StatusCheck_WarningThenClean(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["status"] = "Please enter your login details."

	client := New(runner)
	client.StatusCheck()

	snapshot := client.Snapshot()
	if snapshot.State != StatusWaiting {
		t.Errorf("State = %v, want Waiting while the warning is active", snapshot.State)
	}
	if !snapshot.HasWarnings() {
		t.Fatal("warning should be registered")
	}

	// Clean output on the next refresh clears the warning and the
	// snapshot parses normally again.
	runner.responses["status"] = "Status: Disconnected"
	client.StatusCheck()

	snapshot = client.Snapshot()
	if snapshot.HasWarnings() {
		t.Error("clean output should clear warnings")
	}
	if snapshot.State != StatusDisconnected {
		t.Errorf("State = %v, want Disconnected", snapshot.State)
	}
}

func TestClient_StatusCheck_PersistentWarningRecordedOnce(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["status"] = "Please enter your login details."

	recorder := &fakeRecorder{}
	client := New(runner)
	client.SetRecorder(recorder)

	client.StatusCheck()
	client.StatusCheck()

	if recorder.count(EventWarning) != 1 {
		t.Errorf("warning recorded %d times, want once", recorder.count(EventWarning))
	}
}

func TestClient_Countries(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["countries"] = "-\r  \rAlbania, United_States, France,\nGermany"

	client := New(runner)
	countries := client.Countries()

	expected := []string{"Albania", "France", "Germany", "United_States"}
	if !reflect.DeepEqual(countries, expected) {
		t.Errorf("Countries() = %v, want %v", countries, expected)
	}
}

func TestClient_Cities(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["cities United_States"] = "New_York, Los_Angeles"

	client := New(runner)
	cities := client.Cities("United States")

	expected := []string{"Los_Angeles", "New_York"}
	if !reflect.DeepEqual(cities, expected) {
		t.Errorf("Cities() = %v, want %v", cities, expected)
	}
}

func TestClient_Countries_Failure(t *testing.T) {
	runner := newFakeRunner()
	runner.errs["countries"] = common.ErrCommandFailed

	client := New(runner)
	if countries := client.Countries(); countries != nil {
		t.Errorf("Countries() = %v, want nil on failure", countries)
	}
}

func TestClient_CurrentSettings(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["settings"] = "Protocol: UDP\nKill Switch: enabled"

	client := New(runner)
	settings := client.CurrentSettings()

	if settings[Protocol] != StringValue("UDP") {
		t.Errorf("Protocol = %v", settings[Protocol])
	}
	if settings[KillSwitch] != BoolValue(true) {
		t.Errorf("KillSwitch = %v", settings[KillSwitch])
	}
}

func TestClient_ApplySetting_IssuedArgs(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["set autoconnect on france"] = "Auto-connect is set to 'enabled' successfully."

	client := New(runner)
	if err := client.ApplySetting(AutoConnect, StringValue("France")); err != nil {
		t.Fatalf("ApplySetting() error = %v", err)
	}

	if runner.calls[0] != "set autoconnect on france" {
		t.Errorf("issued %q, want %q", runner.calls[0], "set autoconnect on france")
	}
}

func TestClient_Login(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["login --username user@example.com --password secret"] = "Welcome to NordVPN! You can now connect to VPN."

	client := New(runner)
	if err := client.Login("user@example.com", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestClient_Login_Failure(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["login --username user --password bad"] = "Username or password is not correct."

	client := New(runner)
	err := client.Login("user", "bad")
	if !errors.Is(err, common.ErrLoginFailed) {
		t.Errorf("Login() error = %v, want ErrLoginFailed", err)
	}
}

func TestClient_OnChangeCallback(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect"] = "You are now connected to France #443"

	var gotMessage string
	var gotConnected bool

	client := New(runner)
	client.SetOnChange(func(message string, connected bool) {
		gotMessage = message
		gotConnected = connected
	})
	client.Connect()

	if !strings.HasPrefix(gotMessage, "You are now connected") || !gotConnected {
		t.Errorf("onChange got (%q, %v)", gotMessage, gotConnected)
	}
}

func TestClient_RecorderEvents(t *testing.T) {
	runner := newFakeRunner()
	runner.responses["connect"] = "You are now connected to France #443"
	runner.responses["disconnect"] = "You have been disconnected."

	recorder := &fakeRecorder{}
	client := New(runner)
	client.SetRecorder(recorder)

	client.Connect()
	client.Disconnect()

	if recorder.count(EventConnected) != 1 || recorder.count(EventDisconnected) != 1 {
		t.Errorf("recorded events = %v", recorder.events)
	}
}

type fakeRecorder struct {
	events []string
}

func (r *fakeRecorder) Record(kind, detail string) {
	r.events = append(r.events, kind)
}

func (r *fakeRecorder) count(kind string) int {
	n := 0
	for _, event := range r.events {
		if event == kind {
			n++
		}
	}
	return n
}
