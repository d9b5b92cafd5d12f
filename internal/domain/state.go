package domain

// OpenState is the launch state machine's main state.
// Terminal-ish states are soft: any state can be revisited, e.g. a
// store-return event re-enters Trying from Failed.
type OpenState string

const (
	OpenIdle    OpenState = "idle"
	OpenTrying  OpenState = "trying"
	OpenOpened  OpenState = "opened"
	OpenFailed  OpenState = "failed"
)

// InstallChoice tracks the user's answer to the install prompt shown
// after every auto-try attempt timed out.
type InstallChoice string

const (
	InstallNone   InstallChoice = "none"
	InstallAsking InstallChoice = "asking"
	InstallYes    InstallChoice = "yes"
	InstallNo     InstallChoice = "no"
)
