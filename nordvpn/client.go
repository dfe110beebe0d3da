package nordvpn

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"nordvpn-indicator/common"
)

// Canonical warning banners surfaced in the status display. The
// client's own wording varies between releases, so detected banners are
// normalized to these.
const (
	WarnUpdateAvailable = "A new version of the NordVPN client is available."
	WarnLoginRequired   = "Please log in to your NordVPN account."
)

var (
	connectedPhrase    = regexp.MustCompile(`You are now connected to [^\r\n]*`)
	disconnectedPhrase = regexp.MustCompile(`You have been disconnected[^\r\n]*`)
	loginPhrase        = regexp.MustCompile(`(?i)welcome|you are logged in`)
)

// detectWarning reports the canonical warning for known non-fatal
// banners in command output. Matching is case-insensitive substring
// search, tolerant of the surrounding sentence changing.
func detectWarning(output string) (string, bool) {
	lower := strings.ToLower(output)
	switch {
	case strings.Contains(lower, "new version"):
		return WarnUpdateAvailable, true
	case strings.Contains(lower, "please log in"),
		strings.Contains(lower, "login details"):
		return WarnLoginRequired, true
	}
	return "", false
}

// Event kinds passed to the Recorder.
const (
	EventConnected    = "connected"
	EventDisconnected = "disconnected"
	EventWarning      = "warning"
)

// Recorder receives connection events as they are confirmed. Recording
// is best effort; implementations must not block for long.
type Recorder interface {
	Record(kind, detail string)
}

// Client orchestrates the external VPN client: connecting,
// disconnecting, status refreshes, settings, and account login. All
// methods serialize on an internal mutex so at most one external
// command runs at a time, whichever goroutine asks.
type Client struct {
	mu     sync.Mutex
	runner Runner
	status *Status

	// connected tracks the last confirmed connect/disconnect outcome;
	// status refreshes keep it in sync with the parsed state.
	connected    bool
	confirmation string

	recorder Recorder
	onChange func(message string, connected bool)
}

// New creates a client around the given runner.
func New(runner Runner) *Client {
	return &Client{
		runner: runner,
		status: NewStatus(),
	}
}

// NewWithCommand creates a client that shells out to the given command.
func NewWithCommand(command string) *Client {
	return New(NewExecRunner(command))
}

// SetRecorder installs an event recorder. Pass nil to disable.
func (c *Client) SetRecorder(recorder Recorder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorder = recorder
}

// SetOnChange installs a callback fired after every confirmed connect,
// disconnect, or detected warning. The callback runs with the client
// lock held; it must not call back into the client.
func (c *Client) SetOnChange(fn func(message string, connected bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns a copy of the current status snapshot.
func (c *Client) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status.clone()
}

// Connected reports the last confirmed connection outcome.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Confirmation returns the last confirmation sentence the client
// printed, like "You are now connected to France #123".
func (c *Client) Confirmation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

// Connect connects to the fastest available server.
func (c *Client) Connect() error {
	return c.connect("connect")
}

// ConnectCountry connects to the fastest server in a country.
func (c *Client) ConnectCountry(country string) error {
	return c.connect("connect", commandTarget(country))
}

// ConnectCity connects to the fastest server in a city. The client
// resolves city names directly, no country needed.
func (c *Client) ConnectCity(city string) error {
	return c.connect("connect", commandTarget(city))
}

// ConnectGroup connects to a server group, like Double_VPN.
func (c *Client) ConnectGroup(group string) error {
	return c.connect("connect", "--group", commandTarget(group))
}

// commandTarget normalizes a display name into the single token the
// client expects: "United States" becomes "United_States".
func commandTarget(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

func (c *Client) connect(args ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.State = StatusWaiting
	output, err := c.runner.Run(args...)
	if output == "" {
		common.LogWarn("connect produced no output: %v", err)
		return err
	}

	if phrase := connectedPhrase.FindString(output); phrase != "" {
		c.connected = true
		c.confirmation = phrase
		c.status.ClearWarnings()
		common.LogInfo("%s", phrase)
		c.record(EventConnected, phrase)
		c.notifyChange(phrase, true)
		return nil
	}

	if warning, found := detectWarning(output); found {
		c.status.AddWarning(warning)
		common.LogWarn("connect: %s", warning)
		c.record(EventWarning, warning)
		c.notifyChange(warning, c.connected)
		return nil
	}

	// Unrecognized output with no known banner; drop stale warnings
	// and let the next status refresh settle the state.
	c.status.ClearWarnings()
	common.LogWarn("connect: unrecognized output: %s", output)
	return err
}

// Disconnect tears down the current connection.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.State = StatusWaiting
	output, err := c.runner.Run("disconnect")
	if output == "" {
		common.LogWarn("disconnect produced no output: %v", err)
		return err
	}

	if phrase := disconnectedPhrase.FindString(output); phrase != "" {
		c.connected = false
		c.confirmation = phrase
		c.status.ClearWarnings()
		common.LogInfo("%s", phrase)
		c.record(EventDisconnected, phrase)
		c.notifyChange(phrase, false)
		return nil
	}

	if warning, found := detectWarning(output); found {
		c.status.AddWarning(warning)
		common.LogWarn("disconnect: %s", warning)
		c.record(EventWarning, warning)
		c.notifyChange(warning, c.connected)
		return nil
	}

	c.status.ClearWarnings()
	common.LogWarn("disconnect: unrecognized output: %s", output)
	return err
}

// StatusCheck runs the client's status command and refreshes the
// snapshot. Warning banners in the output are registered before
// parsing; output free of banners clears them.
func (c *Client) StatusCheck() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	output, err := c.runner.Run("status")
	if err != nil {
		common.LogWarn("status check failed: %v", err)
	}

	if warning, found := detectWarning(output); found {
		if _, active := c.status.warnings[warning]; !active {
			c.status.AddWarning(warning)
			c.record(EventWarning, warning)
			c.notifyChange(warning, c.connected)
		}
	} else {
		c.status.ClearWarnings()
	}

	c.status.Update(output)

	switch c.status.State {
	case StatusConnected:
		c.connected = true
	case StatusDisconnected:
		c.connected = false
	}
	return err
}

// Countries lists the available countries, sorted.
func (c *Client) Countries() []string {
	return c.nameList("countries")
}

// Cities lists the available cities in a country, sorted.
func (c *Client) Cities(country string) []string {
	return c.nameList("cities", commandTarget(country))
}

// Groups lists the available server groups, sorted.
func (c *Client) Groups() []string {
	return c.nameList("groups")
}

func (c *Client) nameList(args ...string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	output, err := c.runner.Run(args...)
	if err != nil || output == "" {
		common.LogWarn("listing %s failed: %v", strings.Join(args, " "), err)
		return nil
	}
	return parseNameList(output)
}

// parseNameList extracts the comma-separated names the client prints,
// dropping the progress spinner characters that leak into the output.
// Names keep their underscores; display code decides how to render
// them.
func parseNameList(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if isName(token) {
			names = append(names, token)
		}
	}
	sort.Strings(names)
	return names
}

func isName(token string) bool {
	if len(token) < 2 {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return true
}

// CurrentSettings fetches and parses the client's settings output.
// A failed command yields an empty map.
func (c *Client) CurrentSettings() map[Setting]Value {
	c.mu.Lock()
	defer c.mu.Unlock()

	output, err := c.runner.Run("settings")
	if err != nil || output == "" {
		common.LogWarn("reading settings failed: %v", err)
		return map[Setting]Value{}
	}
	return ParseSettings(output)
}

// ApplySetting issues a `set` command for one setting.
func (c *Client) ApplySetting(setting Setting, value Value) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	args := append([]string{"set"}, FormatSetArgs(setting, value)...)
	output, err := c.runner.Run(args...)
	if err != nil {
		common.LogWarn("set %s failed: %v", setting.Arg(), err)
		return err
	}
	common.LogInfo("set %s: %s", setting.Arg(), output)
	return nil
}

// Login authenticates the client with the given account credentials.
// A missing confirmation in the output is reported as ErrLoginFailed.
func (c *Client) Login(username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	output, err := c.runner.Run("login", "--username", username, "--password", password)
	if err != nil {
		return err
	}
	if !loginPhrase.MatchString(output) {
		return common.ErrLoginFailed
	}
	c.status.ClearWarnings()
	common.LogInfo("logged in as %s", username)
	return nil
}

func (c *Client) record(kind, detail string) {
	if c.recorder != nil {
		c.recorder.Record(kind, detail)
	}
}

func (c *Client) notifyChange(message string, connected bool) {
	if c.onChange != nil {
		c.onChange(message, connected)
	}
}
