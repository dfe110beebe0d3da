// Package nordvpn drives the external NordVPN command-line client.
//
// The client application exposes no machine-readable interface, so this
// package shells out to the binary and scrapes its human-readable
// output. All label matching is table driven: if the client's wording
// changes, the tables in status.go and settings.go are the only places
// to touch.
//
// Key pieces:
//
//   - Runner: executes the external binary and captures its output
//   - Status: the last parsed status snapshot, always fully populated
//     (fields degrade to "Unknown", never go missing)
//   - Setting / Value: the client's configurable options and their
//     translation to `set` command arguments
//   - Client: connect/disconnect/status orchestration with warning
//     banner tracking
//
// Parsing is deliberately forgiving. A failed command or unrecognized
// output never produces a hard error for the user; the snapshot falls
// back to the Waiting state until a later refresh succeeds.
package nordvpn
