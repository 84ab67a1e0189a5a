package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"wukong/internal/api"
)

var relativeSince = regexp.MustCompile(`^(\d+)([mhd])$`)

// sinceClause turns a since cursor into a Cloud Logging timestamp clause.
// An exact timestamp is exclusive so tailing never repeats the last entry.
func sinceClause(since string, now time.Time) (string, error) {
	if since == "" {
		since = "1h"
	}
	if _, err := time.Parse(time.RFC3339Nano, since); err == nil {
		return fmt.Sprintf(`timestamp>"%s"`, since), nil
	}

	m := relativeSince.FindStringSubmatch(since)
	if m == nil {
		return "", fmt.Errorf("invalid since value %q: want an RFC 3339 timestamp or a window like 5m, 1h, 2d", since)
	}
	n, _ := strconv.Atoi(m[1])
	unit := map[string]time.Duration{"m": time.Minute, "h": time.Hour, "d": 24 * time.Hour}[m[2]]
	from := now.Add(-time.Duration(n) * unit).UTC().Format(time.RFC3339)
	return fmt.Sprintf(`timestamp>="%s"`, from), nil
}

// buildLogFilter assembles the advanced logs filter for q inside cluster.
func buildLogFilter(q api.LogQuery, cluster k8sCluster, now time.Time) (string, error) {
	since, err := sinceClause(q.Since, now)
	if err != nil {
		return "", err
	}
	clauses := []string{
		`resource.type="k8s_container"`,
		fmt.Sprintf(`resource.labels.cluster_name="%s"`, cluster.ClusterName),
		fmt.Sprintf(`resource.labels.namespace_name="%s"`, cluster.K8sNamespace),
		since,
	}
	if q.Severity == api.SeverityErrorAndAbove {
		clauses = append(clauses, "severity>=ERROR")
	}
	clauses = append(clauses, fmt.Sprintf("resource.labels.pod_name:%s", q.Version))
	return strings.Join(clauses, " AND "), nil
}

type listEntriesRequest struct {
	ResourceNames []string `json:"resourceNames"`
	Filter        string   `json:"filter"`
	OrderBy       string   `json:"orderBy"`
	PageSize      int      `json:"pageSize,omitempty"`
}

type logEntryJSON struct {
	Timestamp    string          `json:"timestamp"`
	Severity     string          `json:"severity"`
	TextPayload  *string         `json:"textPayload"`
	JSONPayload  map[string]any  `json:"jsonPayload"`
	ProtoPayload json.RawMessage `json:"protoPayload"`
}

type listEntriesResponse struct {
	Entries       []logEntryJSON `json:"entries"`
	NextPageToken string         `json:"nextPageToken"`
}

// FetchLogEntries returns the newest entries matching q, oldest first.
func (c *Client) FetchLogEntries(ctx context.Context, q api.LogQuery) ([]api.LogEntry, error) {
	cluster, err := c.fetchCluster(ctx, q.Application, q.Namespace, q.Version)
	if err != nil {
		return nil, err
	}
	filter, err := buildLogFilter(q, cluster, c.opts.Now())
	if err != nil {
		return nil, err
	}

	body := listEntriesRequest{
		ResourceNames: []string{"projects/" + cluster.GoogleProjectID},
		Filter:        filter,
		// newest first so the page holds the most recent entries
		OrderBy:  "timestamp desc",
		PageSize: q.Limit,
	}

	var resp listEntriesResponse
	err = c.call(ctx, "entries:list", func(ctx context.Context) error {
		req, err := c.bearerRequest(ctx, http.MethodPost, c.opts.LoggingURL+"/v2/entries:list", c.opts.AccessToken, body)
		if err != nil {
			return err
		}
		return c.doJSON(req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	out := make([]api.LogEntry, len(resp.Entries))
	for i, e := range resp.Entries {
		out[len(out)-1-i] = api.LogEntry{
			Timestamp: e.Timestamp,
			Level:     severityName(e.Severity),
			Payload:   renderPayload(e),
		}
	}
	return out, nil
}

func severityName(s string) string {
	if s == "" {
		return "DEFAULT"
	}
	return s
}

func renderPayload(e logEntryJSON) string {
	switch {
	case e.TextPayload != nil:
		return *e.TextPayload
	case e.JSONPayload != nil:
		keys := make([]string, 0, len(e.JSONPayload))
		for k := range e.JSONPayload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, e.JSONPayload[k]))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case len(e.ProtoPayload) > 0:
		return string(e.ProtoPayload)
	}
	return ""
}
