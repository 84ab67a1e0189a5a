package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wukong/internal/api"
	"wukong/internal/config"
	"wukong/internal/gateway"
	"wukong/internal/state"
	"wukong/pkg/logging"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultTimeout = 30 * time.Second

// NamespaceLookup returns the integration settings of a namespace.
type NamespaceLookup func(namespace string) (config.NamespaceConfig, bool)

// Options configures a Dispatcher.
type Options struct {
	// Timeout bounds each gateway call. Zero means 30s.
	Timeout    time.Duration
	Namespaces NamespaceLookup
	Registerer prometheus.Registerer
}

// Dispatcher processes network events one at a time, in submission order.
type Dispatcher struct {
	session    *state.Session
	factory    gateway.Factory
	queue      *Queue
	metrics    *Metrics
	timeout    time.Duration
	namespaces NamespaceLookup
}

// NewDispatcher creates a dispatcher writing into session.
func NewDispatcher(session *state.Session, factory gateway.Factory, opts Options) *Dispatcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	lookup := opts.Namespaces
	if lookup == nil {
		lookup = func(string) (config.NamespaceConfig, bool) { return config.NamespaceConfig{}, false }
	}
	return &Dispatcher{
		session:    session,
		factory:    factory,
		queue:      NewQueue(),
		metrics:    NewMetrics(opts.Registerer),
		timeout:    timeout,
		namespaces: lookup,
	}
}

// Submit enqueues ev. It never blocks.
func (d *Dispatcher) Submit(ev Event) {
	d.queue.Push(ev)
	d.metrics.QueueDepth.Set(float64(d.queue.Len()))
}

// QueueDepth returns the number of events waiting.
func (d *Dispatcher) QueueDepth() int {
	return d.queue.Len()
}

// Run processes events until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	logging.Debug("Dispatcher", "started")
	for {
		ev, err := d.queue.Pop(ctx)
		if err != nil {
			logging.Debug("Dispatcher", "stopped: %v", err)
			return err
		}
		d.metrics.QueueDepth.Set(float64(d.queue.Len()))
		d.handle(ctx, ev)
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev Event) {
	start := time.Now()
	result := d.process(ctx, ev)
	d.metrics.Events.WithLabelValues(ev.String(), result).Inc()
	d.metrics.EventDuration.WithLabelValues(ev.String()).Observe(time.Since(start).Seconds())
	logging.Debug("Dispatcher", "%s finished in %s: %s", ev, time.Since(start).Round(time.Millisecond), result)
}

func (d *Dispatcher) process(ctx context.Context, ev Event) string {
	gw, err := d.factory()
	if err != nil {
		logging.Error("Dispatcher", err, "no gateway for %s", ev)
		d.failEvent(ev, fmt.Errorf("gateway unavailable: %w", err))
		return resultError
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	switch ev {
	case GetDeployments:
		return d.getDeployments(ctx, gw)
	case GetBuilds:
		return d.getBuilds(ctx, gw)
	case GetGCloudLogs:
		return d.getLogs(ctx, gw, false)
	case GetGCloudLogsTail:
		return d.getLogs(ctx, gw, true)
	case GetAppsignalData:
		return d.getAppsignal(ctx, gw)
	case GetDatabaseMetrics:
		return d.getDatabaseMetrics(ctx, gw)
	case VerifyOktaRefreshToken:
		ok, err := gw.VerifyOktaToken(ctx)
		d.session.SetOktaStatus(tokenStatus(ok, err))
		return tokenResult("okta", err)
	case VerifyGCloudToken:
		ok, err := gw.VerifyGCloudToken(ctx)
		d.session.SetGCloudStatus(tokenStatus(ok, err))
		return tokenResult("gcloud", err)
	}
	logging.Warn("Dispatcher", "unknown event %d", int(ev))
	return resultSkipped
}

// failEvent records err on the panel an event would have refreshed.
func (d *Dispatcher) failEvent(ev Event, err error) {
	switch ev {
	case GetDeployments:
		d.session.FailFetch(state.PanelDeployments, err)
	case GetBuilds:
		d.session.FailFetch(state.PanelBuilds, err)
	case GetGCloudLogs, GetGCloudLogsTail:
		d.session.FailLogs(d.session.LogBufferID(), err)
	case GetAppsignalData:
		d.session.FailFetch(state.PanelAppsignal, err)
	case GetDatabaseMetrics:
		d.session.FailFetch(state.PanelDatabase, err)
	case VerifyOktaRefreshToken:
		d.session.SetOktaStatus(state.TokenInvalid)
	case VerifyGCloudToken:
		d.session.SetGCloudStatus(state.TokenInvalid)
	}
}

func (d *Dispatcher) getDeployments(ctx context.Context, gw gateway.Gateway) string {
	d.session.BeginFetch(state.PanelDeployments)
	deployments, err := gw.FetchDeployments(ctx, d.session.Application())
	if err != nil {
		d.session.FailFetch(state.PanelDeployments, err)
		logging.Error("Dispatcher", err, "fetch deployments")
		return resultError
	}
	if d.session.SetDeployments(deployments) {
		sel := d.session.Selection()
		logging.Info("Dispatcher", "selected %s/%s", sel.Namespace, sel.Version)
	}
	return resultOK
}

func (d *Dispatcher) getBuilds(ctx context.Context, gw gateway.Gateway) string {
	sel := d.session.Selection()
	if !sel.Complete() {
		return resultSkipped
	}
	d.session.BeginFetch(state.PanelBuilds)
	builds, err := gw.FetchBuilds(ctx, d.session.Application(), sel.Namespace, sel.Version)
	if err != nil {
		d.session.FailFetch(state.PanelBuilds, err)
		logging.Error("Dispatcher", err, "fetch builds for %s/%s", sel.Namespace, sel.Version)
		return resultError
	}
	d.session.SetBuilds(builds)
	return resultOK
}

func (d *Dispatcher) getLogs(ctx context.Context, gw gateway.Gateway, tail bool) string {
	req, ok := d.session.BeginLogFetch(tail)
	if !ok {
		return resultSkipped
	}
	entries, err := gw.FetchLogEntries(ctx, req.Query)
	if err != nil {
		if !d.session.FailLogs(req.BufferID, err) {
			d.stale(req.BufferID)
			return resultStale
		}
		logging.Error("Dispatcher", err, "fetch logs since %s", req.Query.Since)
		return resultError
	}
	if !d.session.ApplyLogEntries(req.BufferID, entries) {
		d.stale(req.BufferID)
		return resultStale
	}
	return resultOK
}

func (d *Dispatcher) stale(bufferID string) {
	d.metrics.StaleLogResponses.Inc()
	logging.Debug("Dispatcher", "discarded log response for buffer %s", bufferID)
}

func (d *Dispatcher) getDatabaseMetrics(ctx context.Context, gw gateway.Gateway) string {
	sel := d.session.Selection()
	ns, ok := d.namespaces(sel.Namespace)
	if !ok || !ns.CloudSQL.Enable || ns.CloudSQL.ProjectID == "" {
		d.session.SetPanelDisabled(state.PanelDatabase)
		return resultDisabled
	}
	d.session.BeginFetch(state.PanelDatabase)
	metrics, err := gw.FetchDatabaseMetrics(ctx, ns.CloudSQL.ProjectID)
	if err != nil {
		d.session.FailFetch(state.PanelDatabase, err)
		if errors.Is(err, api.ErrPermissionDenied) {
			logging.Warn("Dispatcher", "no access to Cloud SQL metrics in %s", ns.CloudSQL.ProjectID)
		} else {
			logging.Error("Dispatcher", err, "fetch database metrics")
		}
		return resultError
	}
	d.session.SetDatabaseMetrics(metrics)
	return resultOK
}

func tokenStatus(ok bool, err error) state.TokenStatus {
	if err != nil || !ok {
		return state.TokenInvalid
	}
	return state.TokenValid
}

func tokenResult(name string, err error) string {
	if err != nil {
		logging.Warn("Dispatcher", "%s token check failed: %v", name, err)
		return resultError
	}
	return resultOK
}
