package cmd

import "errors"

// errMissingRequiredFlag is returned when --relationships, --announcements,
// or --rov-asns is missing after config-file defaults have been applied,
// per spec.md §6's "three required flags in any order" contract.
var errMissingRequiredFlag = errors.New("--relationships, --announcements and --rov-asns are all required (directly or via --config)")
