package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wukong/internal/api"
)

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// graphqlErr maps API error codes onto the api sentinel errors.
func graphqlErr(e graphqlError) error {
	switch strings.ToLower(e.Extensions.Code) {
	case "unauthenticated", "unable_to_get_token":
		return fmt.Errorf("%s: %w", e.Message, api.ErrUnauthenticated)
	case "forbidden", "permission_denied", "unauthorized":
		return fmt.Errorf("%s: %w", e.Message, api.ErrPermissionDenied)
	case "not_found", "application_not_found":
		return fmt.Errorf("%s: %w", e.Message, api.ErrNotFound)
	}
	return fmt.Errorf("%s", e.Message)
}

// query runs a GraphQL operation against the Wukong API.
func (c *Client) query(ctx context.Context, name, q string, vars map[string]any, out any) error {
	return c.call(ctx, name, func(ctx context.Context) error {
		req, err := c.bearerRequest(ctx, http.MethodPost, c.opts.APIURL, c.opts.IDToken, graphqlRequest{Query: q, Variables: vars})
		if err != nil {
			return err
		}
		var resp graphqlResponse
		if err := c.doJSON(req, &resp); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if len(resp.Errors) > 0 {
			return fmt.Errorf("%s: %w", name, graphqlErr(resp.Errors[0]))
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("%s: decode data: %w", name, err)
		}
		return nil
	})
}

const cdPipelinesQuery = `query cdPipelines($application: String!) {
  cdPipelines(application: $application) {
    name
    version
    enabled
    deployedRef
    buildArtifact
    deployedBy
    environment
    lastDeployment
    status
  }
}`

// FetchDeployments lists the CD pipelines of an application.
func (c *Client) FetchDeployments(ctx context.Context, application string) ([]api.Deployment, error) {
	var data struct {
		CdPipelines []struct {
			Name           string  `json:"name"`
			Version        string  `json:"version"`
			Enabled        bool    `json:"enabled"`
			DeployedRef    *string `json:"deployedRef"`
			BuildArtifact  *string `json:"buildArtifact"`
			DeployedBy     *string `json:"deployedBy"`
			Environment    string  `json:"environment"`
			LastDeployment *int64  `json:"lastDeployment"`
			Status         *string `json:"status"`
		} `json:"cdPipelines"`
	}
	if err := c.query(ctx, "cdPipelines", cdPipelinesQuery, map[string]any{"application": application}, &data); err != nil {
		return nil, err
	}

	out := make([]api.Deployment, 0, len(data.CdPipelines))
	for _, p := range data.CdPipelines {
		d := api.Deployment{
			Name:          p.Name,
			Environment:   p.Environment,
			Version:       p.Version,
			Enabled:       p.Enabled,
			DeployedRef:   deref(p.DeployedRef),
			BuildArtifact: deref(p.BuildArtifact),
			DeployedBy:    deref(p.DeployedBy),
			Status:        deref(p.Status),
		}
		if p.LastDeployment != nil {
			d.LastDeployedAt = time.UnixMilli(*p.LastDeployment)
		}
		out = append(out, d)
	}
	return out, nil
}

const cdPipelineQuery = `query cdPipeline($application: String!, $namespace: String!, $version: String!) {
  cdPipeline(application: $application, namespace: $namespace, version: $version) {
    jenkinsBuilds {
      buildArtifactName
      commits {
        id
        messageHeadline
      }
    }
  }
}`

// FetchBuilds lists the builds available to a namespace/version pipeline.
func (c *Client) FetchBuilds(ctx context.Context, application, namespace, version string) ([]api.Build, error) {
	var data struct {
		CdPipeline *struct {
			JenkinsBuilds []api.Build `json:"jenkinsBuilds"`
		} `json:"cdPipeline"`
	}
	vars := map[string]any{"application": application, "namespace": namespace, "version": version}
	if err := c.query(ctx, "cdPipeline", cdPipelineQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.CdPipeline == nil {
		return nil, fmt.Errorf("pipeline %s/%s: %w", namespace, version, api.ErrNotFound)
	}
	return data.CdPipeline.JenkinsBuilds, nil
}

const applicationClusterQuery = `query applicationWithK8sCluster($name: String!, $namespace: String!, $version: String!) {
  application(name: $name) {
    k8sCluster(namespace: $namespace, version: $version) {
      clusterName
      k8sNamespace
      googleProjectId
    }
  }
}`

// k8sCluster locates where an application's pods run.
type k8sCluster struct {
	ClusterName     string `json:"clusterName"`
	K8sNamespace    string `json:"k8sNamespace"`
	GoogleProjectID string `json:"googleProjectId"`
}

func (c *Client) fetchCluster(ctx context.Context, application, namespace, version string) (k8sCluster, error) {
	var data struct {
		Application *struct {
			K8sCluster *k8sCluster `json:"k8sCluster"`
		} `json:"application"`
	}
	vars := map[string]any{"name": application, "namespace": namespace, "version": version}
	if err := c.query(ctx, "application", applicationClusterQuery, vars, &data); err != nil {
		return k8sCluster{}, err
	}
	if data.Application == nil || data.Application.K8sCluster == nil {
		return k8sCluster{}, fmt.Errorf("cluster for %s %s/%s: %w", application, namespace, version, api.ErrNotFound)
	}
	return *data.Application.K8sCluster, nil
}

const appsignalArgs = `$appId: String!, $environment: String!, $namespace: String!, $start: DateTime!, $until: DateTime!, $timeframe: AppsignalTimeframe!`
const appsignalParams = `appId: $appId, environment: $environment, namespace: $namespace, start: $start, until: $until, timeframe: $timeframe`

var (
	appsignalErrorRateQuery  = `query appsignalAverageErrorRate(` + appsignalArgs + `) { appsignalAverageErrorRate(` + appsignalParams + `) { value } }`
	appsignalThroughputQuery = `query appsignalAverageThroughput(` + appsignalArgs + `) { appsignalAverageThroughput(` + appsignalParams + `) { value } }`
	appsignalLatencyQuery    = `query appsignalAverageLatency(` + appsignalArgs + `) { appsignalAverageLatency(` + appsignalParams + `) { mean p90 p95 } }`
)

func (c *Client) appsignalVars(target api.AppsignalTarget, tf api.Timeframe) map[string]any {
	now := c.opts.Now().UTC()
	return map[string]any{
		"appId":       target.AppID,
		"environment": target.Environment,
		"namespace":   target.Namespace,
		"start":       now.Add(-tf.Duration()).Format(time.RFC3339),
		"until":       now.Format(time.RFC3339),
		"timeframe":   string(tf),
	}
}

// FetchAppsignalErrorRate returns the average error rate over tf.
func (c *Client) FetchAppsignalErrorRate(ctx context.Context, target api.AppsignalTarget, tf api.Timeframe) (float64, error) {
	var data struct {
		V struct {
			Value *float64 `json:"value"`
		} `json:"appsignalAverageErrorRate"`
	}
	if err := c.query(ctx, "appsignalAverageErrorRate", appsignalErrorRateQuery, c.appsignalVars(target, tf), &data); err != nil {
		return 0, err
	}
	return derefFloat(data.V.Value), nil
}

// FetchAppsignalThroughput returns the average throughput over tf.
func (c *Client) FetchAppsignalThroughput(ctx context.Context, target api.AppsignalTarget, tf api.Timeframe) (float64, error) {
	var data struct {
		V struct {
			Value *float64 `json:"value"`
		} `json:"appsignalAverageThroughput"`
	}
	if err := c.query(ctx, "appsignalAverageThroughput", appsignalThroughputQuery, c.appsignalVars(target, tf), &data); err != nil {
		return 0, err
	}
	return derefFloat(data.V.Value), nil
}

// FetchAppsignalLatency returns mean/p90/p95 latency over tf.
func (c *Client) FetchAppsignalLatency(ctx context.Context, target api.AppsignalTarget, tf api.Timeframe) (api.Latency, error) {
	var data struct {
		V struct {
			Mean *float64 `json:"mean"`
			P90  *float64 `json:"p90"`
			P95  *float64 `json:"p95"`
		} `json:"appsignalAverageLatency"`
	}
	if err := c.query(ctx, "appsignalAverageLatency", appsignalLatencyQuery, c.appsignalVars(target, tf), &data); err != nil {
		return api.Latency{}, err
	}
	return api.Latency{
		Mean: derefFloat(data.V.Mean),
		P90:  derefFloat(data.V.P90),
		P95:  derefFloat(data.V.P95),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
