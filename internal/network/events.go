// Package network runs dashboard network events on a background goroutine.
//
// The UI submits events and never blocks. A single Dispatcher drains the
// queue in FIFO order, performs the gateway calls and writes results into
// the shared state.Session. Rendering only ever reads Session snapshots.
package network

// Event is a request for the dispatcher to refresh part of the session.
// Parameters such as the selection or the log cursor are read from the
// session when the event is processed.
type Event int

const (
	GetBuilds Event = iota
	GetDeployments
	GetGCloudLogs
	GetGCloudLogsTail
	GetAppsignalData
	GetDatabaseMetrics
	VerifyOktaRefreshToken
	VerifyGCloudToken
)

func (e Event) String() string {
	switch e {
	case GetBuilds:
		return "GetBuilds"
	case GetDeployments:
		return "GetDeployments"
	case GetGCloudLogs:
		return "GetGCloudLogs"
	case GetGCloudLogsTail:
		return "GetGCloudLogsTail"
	case GetAppsignalData:
		return "GetAppsignalData"
	case GetDatabaseMetrics:
		return "GetDatabaseMetrics"
	case VerifyOktaRefreshToken:
		return "VerifyOktaRefreshToken"
	case VerifyGCloudToken:
		return "VerifyGCloudToken"
	default:
		return "Unknown"
	}
}
