package cmd

import (
	"wukong/internal/app"
	"wukong/pkg/logging"

	"github.com/spf13/cobra"
)

type dashboardOptions struct {
	application string
	logLevel    string
	logFile     string
	debugAddr   string
}

func newDashboardCmd() *cobra.Command {
	opts := &dashboardOptions{}
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Opens a live terminal dashboard for the application.

Deployments, builds, Google Cloud logs, AppSignal and database metrics are
polled in the background while the dashboard stays responsive. Press ? for
the key bindings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.appConfig()
			if err != nil {
				return err
			}
			application, err := app.NewApplication(cfg)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.application, "application", "a", "", "application to inspect (overrides the config file)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "file receiving dashboard logs (default ~/.config/wukong/dashboard.log)")
	cmd.Flags().StringVar(&opts.debugAddr, "debug-addr", "", "serve /healthz, /metrics and /debug/session on this address")
	return cmd
}

func (o *dashboardOptions) appConfig() (*app.Config, error) {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	return app.NewConfig(o.application, level, o.logFile, o.debugAddr), nil
}
