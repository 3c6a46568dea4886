// Package version returns the version string for the currently running
// process.
package version

import "fmt"

// The value of these vars are set through linker options.
var gitCommit = "Local build"
var gitTag = "Unknown"

// GetVersion returns the version string of this build.
func GetVersion() string {
	return fmt.Sprintf("Verdict/%s/%s", gitTag, gitCommit)
}
