// Package api holds the domain types exchanged between the backend gateway,
// the shared dashboard session and the renderer.
package api

import (
	"fmt"
	"time"
)

// Commit is a single commit that went into a build.
type Commit struct {
	ID              string `json:"id"`
	MessageHeadline string `json:"messageHeadline"`
}

// Build is a CI build artifact of the application.
type Build struct {
	Name    string   `json:"buildArtifactName"`
	Commits []Commit `json:"commits"`
}

// Deployment is one CD pipeline of the application, identified by its
// namespace (environment) and version (e.g. blue/green/canary).
type Deployment struct {
	Name           string    `json:"name"`
	Environment    string    `json:"environment"`
	Version        string    `json:"version"`
	Enabled        bool      `json:"enabled"`
	DeployedRef    string    `json:"deployedRef"`
	BuildArtifact  string    `json:"buildArtifact"`
	DeployedBy     string    `json:"deployedBy"`
	LastDeployedAt time.Time `json:"lastDeployedAt"`
	Status         string    `json:"status"`
}

// ShortRef returns the first seven characters of the deployed git ref.
func (d Deployment) ShortRef() string {
	if len(d.DeployedRef) > 7 {
		return d.DeployedRef[:7]
	}
	return d.DeployedRef
}

// Severity selects which log entries the backend returns.
type Severity int

const (
	// SeverityDefault returns entries of every level.
	SeverityDefault Severity = iota
	// SeverityErrorAndAbove returns ERROR, CRITICAL, ALERT and EMERGENCY.
	SeverityErrorAndAbove
)

func (s Severity) String() string {
	if s == SeverityErrorAndAbove {
		return "Error and above"
	}
	return "Default"
}

// LogEntry is one fetched log line.
type LogEntry struct {
	// Timestamp is RFC 3339 with nanoseconds, as returned by Cloud Logging.
	Timestamp string
	Level     string
	Payload   string
}

// String renders the entry the way it is matched by search and filter.
func (e LogEntry) String() string {
	return fmt.Sprintf("time=%s level=%s %s", e.Timestamp, e.Level, e.Payload)
}

// LogQuery is the full set of parameters for one log fetch.
type LogQuery struct {
	Application string
	Namespace   string
	Version     string
	// Since is either an RFC 3339 cursor or a relative window such as "5m".
	Since    string
	Severity Severity
	Limit    int
}

// Timeframe is an AppSignal aggregation window.
type Timeframe string

const (
	TimeframeR1H  Timeframe = "R1H"
	TimeframeR4H  Timeframe = "R4H"
	TimeframeR8H  Timeframe = "R8H"
	TimeframeR12H Timeframe = "R12H"
	TimeframeR24H Timeframe = "R24H"
	TimeframeR7D  Timeframe = "R7D"
	TimeframeR30D Timeframe = "R30D"
)

// Duration converts the timeframe into a time span.
func (t Timeframe) Duration() time.Duration {
	switch t {
	case TimeframeR1H:
		return time.Hour
	case TimeframeR4H:
		return 4 * time.Hour
	case TimeframeR8H:
		return 8 * time.Hour
	case TimeframeR12H:
		return 12 * time.Hour
	case TimeframeR24H:
		return 24 * time.Hour
	case TimeframeR7D:
		return 7 * 24 * time.Hour
	case TimeframeR30D:
		return 30 * 24 * time.Hour
	default:
		return time.Hour
	}
}

// MetricWindows are the windows shown for error rate and throughput.
var MetricWindows = [3]Timeframe{TimeframeR1H, TimeframeR24H, TimeframeR7D}

// AppsignalTarget identifies an application inside AppSignal.
type AppsignalTarget struct {
	AppID       string
	Environment string
	Namespace   string
}

// Latency is an average latency triple in milliseconds.
type Latency struct {
	Mean float64
	P90  float64
	P95  float64
}

// AppsignalMetrics is the aggregate shown on the AppSignal tab. The arrays
// are indexed like MetricWindows.
type AppsignalMetrics struct {
	ErrorRate  [3]float64
	Throughput [3]float64
	Latency    Latency
}

// DatabaseMetrics describes one Cloud SQL database.
type DatabaseMetrics struct {
	Name                string
	CPUUtilization      float64
	MemoryUsage         float64
	MemoryFree          float64
	MemoryCache         float64
	ConnectionsCount    int64
	MaxConnectionsCount int64
}
