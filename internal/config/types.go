package config

import "time"

// WukongConfig is the top-level configuration structure for wukong.
type WukongConfig struct {
	Application string            `yaml:"application"`
	API         APIConfig         `yaml:"api"`
	Auth        AuthConfig        `yaml:"auth"`
	Dashboard   DashboardConfig   `yaml:"dashboard"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	Namespaces  []NamespaceConfig `yaml:"namespaces,omitempty"`
}

// APIConfig points at the Wukong GraphQL API.
type APIConfig struct {
	URL string `yaml:"url"`
}

// AuthConfig holds the credentials the dashboard presents to backends.
// Obtaining them is the job of the login commands.
type AuthConfig struct {
	Okta   OktaConfig   `yaml:"okta"`
	GCloud GCloudConfig `yaml:"gcloud"`
}

type OktaConfig struct {
	IDToken      string `yaml:"idToken,omitempty"`
	RefreshToken string `yaml:"refreshToken,omitempty"`
}

type GCloudConfig struct {
	AccessToken string `yaml:"accessToken,omitempty"`
}

// DashboardConfig tunes the interactive dashboard.
type DashboardConfig struct {
	// TickInterval is the render loop frame interval.
	TickInterval time.Duration `yaml:"tickInterval"`
	// TailInterval is how often new log entries are polled while tailing.
	TailInterval time.Duration `yaml:"tailInterval"`
	// MaxLogEntries bounds the log buffer.
	MaxLogEntries int `yaml:"maxLogEntries"`
	// DefaultSince is the relative window used when no tail cursor exists.
	DefaultSince string `yaml:"defaultSince"`
	LogFile      string `yaml:"logFile,omitempty"`
	DebugAddr    string `yaml:"debugAddr,omitempty"`
}

// GatewayConfig configures outbound calls made by the dispatcher.
type GatewayConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	RateLimit       float64       `yaml:"rateLimit"`
	Burst           int           `yaml:"burst"`
	RetryAttempts   uint          `yaml:"retryAttempts"`
	BreakerFailures uint32        `yaml:"breakerFailures"`
	BreakerCooldown time.Duration `yaml:"breakerCooldown"`

	LoggingURL    string `yaml:"loggingURL"`
	MonitoringURL string `yaml:"monitoringURL"`
	SQLAdminURL   string `yaml:"sqlAdminURL"`
	TokenInfoURL  string `yaml:"tokenInfoURL"`
}

// NamespaceConfig enables optional integrations for one deployment namespace.
type NamespaceConfig struct {
	Name      string          `yaml:"name"`
	Appsignal AppsignalConfig `yaml:"appsignal"`
	CloudSQL  CloudSQLConfig  `yaml:"cloudsql"`
}

type AppsignalConfig struct {
	Enable           bool   `yaml:"enable"`
	AppID            string `yaml:"appId"`
	Environment      string `yaml:"environment"`
	DefaultNamespace string `yaml:"defaultNamespace"`
}

type CloudSQLConfig struct {
	Enable    bool   `yaml:"enable"`
	ProjectID string `yaml:"projectId"`
}

// Namespace returns the integration settings for the named namespace.
func (c WukongConfig) Namespace(name string) (NamespaceConfig, bool) {
	for _, ns := range c.Namespaces {
		if ns.Name == name {
			return ns, true
		}
	}
	return NamespaceConfig{}, false
}
