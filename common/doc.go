// Package common provides shared constants, errors, logging, and
// utilities used throughout the NordVPN Indicator application.
//
// This package holds the cross-cutting concerns:
//
//   - Constants: application identity, file names, default intervals
//   - Errors: sentinel errors for consistent handling across packages
//   - Logger: leveled logging with optional rotating file output
//   - Utils: small helpers for configuration paths and files
//
// # Usage
//
//	import "nordvpn-indicator/common"
//
//	common.LogInfo("refreshing status every %v", interval)
//
//	if errors.Is(err, common.ErrCommandFailed) {
//	    // external client could not be run; degrade to "Unknown"
//	}
package common
