package app

import (
	"wukong/internal/debugserver"
	"wukong/internal/gateway"
	"wukong/internal/network"
	"wukong/internal/state"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Services holds everything the dashboard runs on besides the program
// itself.
type Services struct {
	Session    *state.Session
	Dispatcher *network.Dispatcher
	Registry   *prometheus.Registry
	// DebugServer is nil unless a debug address is configured.
	DebugServer *debugserver.Server
}

// InitializeServices creates the session, the gateway factory and the
// dispatcher from a resolved configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	wc := cfg.WukongConfig

	session := state.New(wc.Application, wc.Dashboard.MaxLogEntries, wc.Dashboard.DefaultSince)
	factory := gateway.NewFactory(gateway.OptionsFromConfig(*wc), gateway.NewReliability(wc.Gateway))

	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	dispatcher := network.NewDispatcher(session, factory, network.Options{
		Timeout:    wc.Gateway.Timeout,
		Namespaces: wc.Namespace,
		Registerer: reg,
	})

	s := &Services{
		Session:    session,
		Dispatcher: dispatcher,
		Registry:   reg,
	}
	if wc.Dashboard.DebugAddr != "" {
		s.DebugServer = debugserver.New(session, dispatcher, reg)
	}
	return s, nil
}
