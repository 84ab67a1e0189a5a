package network

import (
	"context"

	"wukong/internal/api"
	"wukong/internal/gateway"
	"wukong/internal/state"
	"wukong/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// appsignalCalls is the number of concurrent AppSignal requests per refresh:
// error rate and throughput per metric window, plus latency.
const appsignalCalls = 2*len(api.MetricWindows) + 1

func (d *Dispatcher) getAppsignal(ctx context.Context, gw gateway.Gateway) string {
	sel := d.session.Selection()
	ns, ok := d.namespaces(sel.Namespace)
	if !ok || !ns.Appsignal.Enable {
		d.session.SetPanelDisabled(state.PanelAppsignal)
		return resultDisabled
	}
	target := api.AppsignalTarget{
		AppID:       ns.Appsignal.AppID,
		Environment: ns.Appsignal.Environment,
		Namespace:   ns.Appsignal.DefaultNamespace,
	}

	d.session.BeginFetch(state.PanelAppsignal)
	m, err := fetchAppsignal(ctx, gw, target)
	if err != nil {
		d.session.FailFetch(state.PanelAppsignal, err)
		logging.Error("Dispatcher", err, "fetch appsignal metrics for %s", target.AppID)
		return resultError
	}
	d.session.SetAppsignal(m)
	return resultOK
}

// fetchAppsignal runs every AppSignal query concurrently and joins them. A
// failed query leaves its value at zero; only when all of them fail is an
// error returned.
func fetchAppsignal(ctx context.Context, gw gateway.Gateway, target api.AppsignalTarget) (api.AppsignalMetrics, error) {
	var (
		m    api.AppsignalMetrics
		errs [appsignalCalls]error
		g    errgroup.Group
	)

	for i, tf := range api.MetricWindows {
		g.Go(func() error {
			v, err := gw.FetchAppsignalErrorRate(ctx, target, tf)
			m.ErrorRate[i], errs[i] = v, err
			return nil
		})
		g.Go(func() error {
			v, err := gw.FetchAppsignalThroughput(ctx, target, tf)
			m.Throughput[i], errs[len(api.MetricWindows)+i] = v, err
			return nil
		})
	}
	g.Go(func() error {
		v, err := gw.FetchAppsignalLatency(ctx, target, api.TimeframeR1H)
		m.Latency, errs[appsignalCalls-1] = v, err
		return nil
	})
	_ = g.Wait()

	var first error
	failed := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		failed++
		if first == nil {
			first = err
		}
		logging.Debug("Dispatcher", "appsignal query failed: %v", err)
	}
	if failed == appsignalCalls {
		return api.AppsignalMetrics{}, first
	}
	return m, nil
}
