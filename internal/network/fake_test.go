package network

import (
	"context"
	"sync"

	"wukong/internal/api"
	"wukong/internal/gateway"
)

// fakeGateway answers from function fields. Unset fields return zero values.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	deployments func(ctx context.Context) ([]api.Deployment, error)
	builds      func(ctx context.Context, ns, version string) ([]api.Build, error)
	logs        func(ctx context.Context, q api.LogQuery) ([]api.LogEntry, error)
	errorRate   func(ctx context.Context, tf api.Timeframe) (float64, error)
	throughput  func(ctx context.Context, tf api.Timeframe) (float64, error)
	latency     func(ctx context.Context) (api.Latency, error)
	databases   func(ctx context.Context, project string) ([]api.DatabaseMetrics, error)
	okta        func(ctx context.Context) (bool, error)
	gcloud      func(ctx context.Context) (bool, error)
}

var _ gateway.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) factory() gateway.Factory {
	return func() (gateway.Gateway, error) { return f, nil }
}

func (f *fakeGateway) FetchDeployments(ctx context.Context, application string) ([]api.Deployment, error) {
	f.record("deployments")
	if f.deployments == nil {
		return nil, nil
	}
	return f.deployments(ctx)
}

func (f *fakeGateway) FetchBuilds(ctx context.Context, application, namespace, version string) ([]api.Build, error) {
	f.record("builds")
	if f.builds == nil {
		return nil, nil
	}
	return f.builds(ctx, namespace, version)
}

func (f *fakeGateway) FetchLogEntries(ctx context.Context, q api.LogQuery) ([]api.LogEntry, error) {
	f.record("logs")
	if f.logs == nil {
		return nil, nil
	}
	return f.logs(ctx, q)
}

func (f *fakeGateway) FetchAppsignalErrorRate(ctx context.Context, _ api.AppsignalTarget, tf api.Timeframe) (float64, error) {
	f.record("errorRate")
	if f.errorRate == nil {
		return 0, nil
	}
	return f.errorRate(ctx, tf)
}

func (f *fakeGateway) FetchAppsignalThroughput(ctx context.Context, _ api.AppsignalTarget, tf api.Timeframe) (float64, error) {
	f.record("throughput")
	if f.throughput == nil {
		return 0, nil
	}
	return f.throughput(ctx, tf)
}

func (f *fakeGateway) FetchAppsignalLatency(ctx context.Context, _ api.AppsignalTarget, _ api.Timeframe) (api.Latency, error) {
	f.record("latency")
	if f.latency == nil {
		return api.Latency{}, nil
	}
	return f.latency(ctx)
}

func (f *fakeGateway) FetchDatabaseMetrics(ctx context.Context, projectID string) ([]api.DatabaseMetrics, error) {
	f.record("databases")
	if f.databases == nil {
		return nil, nil
	}
	return f.databases(ctx, projectID)
}

func (f *fakeGateway) VerifyOktaToken(ctx context.Context) (bool, error) {
	f.record("okta")
	if f.okta == nil {
		return true, nil
	}
	return f.okta(ctx)
}

func (f *fakeGateway) VerifyGCloudToken(ctx context.Context) (bool, error) {
	f.record("gcloud")
	if f.gcloud == nil {
		return true, nil
	}
	return f.gcloud(ctx)
}
