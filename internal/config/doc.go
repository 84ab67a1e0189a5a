// Package config provides configuration management for wukong.
//
// This package implements a layered configuration system. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (compiled into the binary)
//
//  2. User Configuration (~/.config/wukong/config.yaml)
//     - Tokens, API endpoint and personal dashboard preferences
//
//  3. Project Configuration (./.wukong/config.yaml)
//     - Application name and per-namespace integrations shared by a team
//
//  4. Environment variables (WUKONG_*)
//     - Applied last through viper, mostly used to inject short lived tokens
//
// # Configuration Structure
//
//	application: "wukong-api"
//	api:
//	  url: "https://wukong-api.example.com/api"
//	auth:
//	  okta:
//	    idToken: "..."
//	  gcloud:
//	    accessToken: "..."
//	dashboard:
//	  tickInterval: 250ms
//	  tailInterval: 5s
//	  maxLogEntries: 1000
//	namespaces:
//	  - name: prod
//	    appsignal:
//	      enable: true
//	      appId: "abc"
//	      environment: "production"
//	      defaultNamespace: "web"
//	    cloudsql:
//	      enable: true
//	      projectId: "my-project"
//
// Namespaces are merged by name: a later layer replaces a namespace entry
// with the same name and appends new ones.
package config
