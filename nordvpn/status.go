package nordvpn

import (
	"regexp"
	"sort"
	"strings"
)

// ConnectionStatus is the reported state of the VPN tunnel.
type ConnectionStatus int

const (
	// StatusWaiting covers everything that is neither confirmed
	// connected nor confirmed disconnected: connecting, unparsable
	// output, pending warnings.
	StatusWaiting ConnectionStatus = iota
	StatusConnected
	StatusDisconnected
)

// String returns the human-readable state name shown in the tray.
func (s ConnectionStatus) String() string {
	switch s {
	case StatusConnected:
		return "Connected"
	case StatusDisconnected:
		return "Disconnected"
	default:
		return "Waiting"
	}
}

// UnknownValue is shown for any status field the client did not report.
const UnknownValue = "Unknown"

type statusField int

const (
	fieldStatus statusField = iota
	fieldServer
	fieldCountry
	fieldCity
	fieldIP
	fieldProtocol
	fieldTransfer
	fieldUptime
)

// statusLabels maps each field to the exact label the client prints.
// Matching is case-sensitive and takes the first occurrence of a label;
// a changed output format means editing this table only.
var statusLabels = []struct {
	field statusField
	label string
}{
	{fieldStatus, "Status"},
	{fieldServer, "Current server"},
	{fieldCountry, "Country"},
	{fieldCity, "City"},
	{fieldIP, "Your new IP"},
	{fieldProtocol, "Current protocol"},
	{fieldTransfer, "Transfer"},
	{fieldUptime, "Uptime"},
}

var labelPatterns = compileLabelPatterns()

func compileLabelPatterns() map[statusField]*regexp.Regexp {
	patterns := make(map[statusField]*regexp.Regexp, len(statusLabels))
	for _, entry := range statusLabels {
		patterns[entry.field] = regexp.MustCompile(
			regexp.QuoteMeta(entry.label) + `:[ \t]*([^\r\n]*)`)
	}
	return patterns
}

// matchLabel finds the first occurrence of the field's label in raw and
// returns the trimmed remainder of that line.
func matchLabel(raw string, field statusField) (string, bool) {
	match := labelPatterns[field].FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

// parseState maps the literal value after the Status label to a
// ConnectionStatus. "Connecting" and anything unexpected both land in
// the Waiting state.
func parseState(value string) (ConnectionStatus, bool) {
	switch value {
	case "Connected":
		return StatusConnected, true
	case "Disconnected":
		return StatusDisconnected, true
	case "Connecting":
		return StatusWaiting, true
	default:
		return StatusWaiting, false
	}
}

// Status is the parsed snapshot of the client's `status` output. One
// snapshot is created per Client and mutated in place on every refresh,
// so display code always has a fully populated value to render. Fields
// the client did not report hold UnknownValue.
type Status struct {
	// Raw is the unparsed status text, with any active warnings
	// appended one per line.
	Raw      string
	State    ConnectionStatus
	Server   string
	Country  string
	City     string
	IP       string
	Protocol string
	Transfer string
	Uptime   string

	warnings map[string]struct{}
}

// NewStatus returns a snapshot in the Waiting state with every field
// set to UnknownValue.
func NewStatus() *Status {
	return &Status{
		Raw:      UnknownValue,
		State:    StatusWaiting,
		Server:   UnknownValue,
		Country:  UnknownValue,
		City:     UnknownValue,
		IP:       UnknownValue,
		Protocol: UnknownValue,
		Transfer: UnknownValue,
		Uptime:   UnknownValue,
		warnings: make(map[string]struct{}),
	}
}

// AddWarning registers a warning banner. Adding the same warning twice
// has no effect, so a warning that persists across refreshes is shown
// once.
func (s *Status) AddWarning(message string) {
	if s.warnings == nil {
		s.warnings = make(map[string]struct{})
	}
	s.warnings[message] = struct{}{}
}

// ClearWarnings removes all active warnings.
func (s *Status) ClearWarnings() {
	for key := range s.warnings {
		delete(s.warnings, key)
	}
}

// HasWarnings reports whether any warning is active.
func (s *Status) HasWarnings() bool {
	return len(s.warnings) > 0
}

// Warnings returns the active warnings in sorted order.
func (s *Status) Warnings() []string {
	warnings := make([]string, 0, len(s.warnings))
	for message := range s.warnings {
		warnings = append(warnings, message)
	}
	sort.Strings(warnings)
	return warnings
}

// Update re-parses the snapshot from raw status output.
//
// While warnings are active, parsing is suppressed entirely: the state
// drops to Waiting and Raw shows the output followed by each warning on
// its own line. Field values from the last successful parse are kept.
//
// With no warnings active, the Status label is located first. A missing
// label or an unrecognized value leaves every other field untouched and
// sets the state to Waiting. Only when the state parses are the
// remaining fields refreshed, each falling back to UnknownValue when
// its label is absent.
func (s *Status) Update(raw string) {
	if s.HasWarnings() {
		s.State = StatusWaiting
		lines := append([]string{raw}, s.Warnings()...)
		s.Raw = strings.Join(lines, "\n")
		return
	}

	s.Raw = raw

	value, found := matchLabel(raw, fieldStatus)
	if !found {
		s.State = StatusWaiting
		return
	}
	state, recognized := parseState(value)
	if !recognized {
		s.State = StatusWaiting
		return
	}
	s.State = state

	s.Server = fieldOrUnknown(raw, fieldServer)
	s.Country = fieldOrUnknown(raw, fieldCountry)
	s.City = fieldOrUnknown(raw, fieldCity)
	s.IP = fieldOrUnknown(raw, fieldIP)
	s.Protocol = fieldOrUnknown(raw, fieldProtocol)
	s.Transfer = fieldOrUnknown(raw, fieldTransfer)
	s.Uptime = fieldOrUnknown(raw, fieldUptime)
}

func fieldOrUnknown(raw string, field statusField) string {
	if value, found := matchLabel(raw, field); found && value != "" {
		return value
	}
	return UnknownValue
}

// clone returns a copy safe to hand to display code running on another
// goroutine.
func (s *Status) clone() Status {
	copied := *s
	copied.warnings = make(map[string]struct{}, len(s.warnings))
	for key := range s.warnings {
		copied.warnings[key] = struct{}{}
	}
	return copied
}
