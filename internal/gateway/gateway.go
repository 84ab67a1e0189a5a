// Package gateway performs the backend calls behind dashboard network events.
//
// The Wukong GraphQL API serves deployments, builds, application cluster
// details and AppSignal aggregates. Log entries, database metrics and token
// checks go to the Google Cloud REST endpoints with the user's access token.
package gateway

import (
	"context"

	"wukong/internal/api"
)

// Gateway is the set of request/response calls the dispatcher can make.
// Every call is atomic: there is no streaming, tailing is repeated fetches.
type Gateway interface {
	FetchDeployments(ctx context.Context, application string) ([]api.Deployment, error)
	FetchBuilds(ctx context.Context, application, namespace, version string) ([]api.Build, error)
	FetchLogEntries(ctx context.Context, q api.LogQuery) ([]api.LogEntry, error)

	FetchAppsignalErrorRate(ctx context.Context, target api.AppsignalTarget, tf api.Timeframe) (float64, error)
	FetchAppsignalThroughput(ctx context.Context, target api.AppsignalTarget, tf api.Timeframe) (float64, error)
	FetchAppsignalLatency(ctx context.Context, target api.AppsignalTarget, tf api.Timeframe) (api.Latency, error)

	FetchDatabaseMetrics(ctx context.Context, projectID string) ([]api.DatabaseMetrics, error)

	// VerifyOktaToken reports whether the stored Okta session is usable.
	VerifyOktaToken(ctx context.Context) (bool, error)
	// VerifyGCloudToken reports whether the Google Cloud access token is live.
	VerifyGCloudToken(ctx context.Context) (bool, error)
}

// Factory hands out a fresh Gateway for each dispatched event.
type Factory func() (Gateway, error)
