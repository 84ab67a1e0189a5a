package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"wukong/internal/api"
)

const (
	metricCPU         = "cloudsql.googleapis.com/database/cpu/utilization"
	metricMemory      = "cloudsql.googleapis.com/database/memory/components"
	metricConnections = "cloudsql.googleapis.com/database/postgresql/num_backends"

	// metricWindow is how far back time series are read.
	metricWindow = 3 * time.Minute
)

type sqlInstanceList struct {
	Items []struct {
		Name     string `json:"name"`
		Settings struct {
			DatabaseFlags []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"databaseFlags"`
		} `json:"settings"`
	} `json:"items"`
}

type timeSeriesList struct {
	TimeSeries []struct {
		Metric struct {
			Labels map[string]string `json:"labels"`
		} `json:"metric"`
		Resource struct {
			Labels map[string]string `json:"labels"`
		} `json:"resource"`
		Points []struct {
			Value struct {
				DoubleValue *float64    `json:"doubleValue"`
				Int64Value  json.Number `json:"int64Value"`
			} `json:"value"`
		} `json:"points"`
	} `json:"timeSeries"`
}

// FetchDatabaseMetrics reads recent Cloud SQL metrics for every database in
// the project.
func (c *Client) FetchDatabaseMetrics(ctx context.Context, projectID string) ([]api.DatabaseMetrics, error) {
	if projectID == "" {
		return nil, fmt.Errorf("cloudsql project: %w", api.ErrNotConfigured)
	}

	var instances sqlInstanceList
	err := c.call(ctx, "sqladmin.instances", func(ctx context.Context) error {
		u := fmt.Sprintf("%s/v1/projects/%s/instances", c.opts.SQLAdminURL, url.PathEscape(projectID))
		req, err := c.bearerRequest(ctx, http.MethodGet, u, c.opts.AccessToken, nil)
		if err != nil {
			return err
		}
		return c.doJSON(req, &instances)
	})
	if err != nil {
		return nil, fmt.Errorf("list database instances: %w", err)
	}

	maxConnections := map[string]int64{}
	for _, inst := range instances.Items {
		for _, flag := range inst.Settings.DatabaseFlags {
			if flag.Name == "max_connections" {
				n, _ := strconv.ParseInt(flag.Value, 10, 64)
				maxConnections[projectID+":"+inst.Name] = n
			}
		}
	}

	byDatabase := map[string]*api.DatabaseMetrics{}
	get := func(id string) *api.DatabaseMetrics {
		m, ok := byDatabase[id]
		if !ok {
			m = &api.DatabaseMetrics{Name: databaseLabel(id), MaxConnectionsCount: maxConnections[id]}
			byDatabase[id] = m
		}
		return m
	}

	end := c.opts.Now().UTC()
	start := end.Add(-metricWindow)
	for _, metric := range []string{metricCPU, metricMemory, metricConnections} {
		series, err := c.listTimeSeries(ctx, projectID, metric, start, end)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", metric, err)
		}
		for _, ts := range series.TimeSeries {
			id := ts.Resource.Labels["database_id"]
			if id == "" || len(ts.Points) == 0 {
				continue
			}
			// points are newest first
			v := ts.Points[0].Value
			m := get(id)
			switch metric {
			case metricCPU:
				if v.DoubleValue != nil {
					m.CPUUtilization = *v.DoubleValue * 100
				}
			case metricMemory:
				if v.DoubleValue == nil {
					continue
				}
				switch ts.Metric.Labels["component"] {
				case "Usage":
					m.MemoryUsage = *v.DoubleValue
				case "Free":
					m.MemoryFree = *v.DoubleValue
				case "Cache":
					m.MemoryCache = *v.DoubleValue
				}
			case metricConnections:
				n, _ := v.Int64Value.Int64()
				m.ConnectionsCount += n
			}
		}
	}

	out := make([]api.DatabaseMetrics, 0, len(byDatabase))
	for _, m := range byDatabase {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Client) listTimeSeries(ctx context.Context, projectID, metric string, start, end time.Time) (timeSeriesList, error) {
	q := url.Values{}
	q.Set("filter", fmt.Sprintf(`metric.type="%s"`, metric))
	q.Set("interval.startTime", start.Format(time.RFC3339))
	q.Set("interval.endTime", end.Format(time.RFC3339))
	u := fmt.Sprintf("%s/v3/projects/%s/timeSeries?%s", c.opts.MonitoringURL, url.PathEscape(projectID), q.Encode())

	var out timeSeriesList
	err := c.call(ctx, "monitoring.timeSeries", func(ctx context.Context) error {
		req, err := c.bearerRequest(ctx, http.MethodGet, u, c.opts.AccessToken, nil)
		if err != nil {
			return err
		}
		return c.doJSON(req, &out)
	})
	return out, err
}

// databaseLabel trims the "project:" prefix from a Cloud SQL database id.
func databaseLabel(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}
