package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"wukong/internal/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinceClause(t *testing.T) {
	tests := []struct {
		name    string
		since   string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to an hour", since: "", want: `timestamp>="2024-05-01T11:00:00Z"`},
		{name: "minutes", since: "5m", want: `timestamp>="2024-05-01T11:55:00Z"`},
		{name: "days", since: "2d", want: `timestamp>="2024-04-29T12:00:00Z"`},
		{name: "cursor is exclusive", since: "2024-05-01T11:59:30.123456789Z", want: `timestamp>"2024-05-01T11:59:30.123456789Z"`},
		{name: "garbage", since: "yesterday", wantErr: true},
		{name: "unknown unit", since: "5w", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sinceClause(tt.since, fixedNow)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildLogFilter(t *testing.T) {
	cluster := k8sCluster{ClusterName: "main", K8sNamespace: "wukong-prod", GoogleProjectID: "proj"}

	q := api.LogQuery{Version: "green", Since: "5m"}
	got, err := buildLogFilter(q, cluster, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, `resource.type="k8s_container" AND resource.labels.cluster_name="main" AND `+
		`resource.labels.namespace_name="wukong-prod" AND timestamp>="2024-05-01T11:55:00Z" AND `+
		`resource.labels.pod_name:green`, got)

	q.Severity = api.SeverityErrorAndAbove
	got, err = buildLogFilter(q, cluster, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, got, "severity>=ERROR")
}

func TestFetchLogEntries(t *testing.T) {
	var listed listEntriesRequest
	r := chi.NewRouter()
	r.Post("/api", graphqlHandler(t, func(graphqlRequest) any {
		return map[string]any{"data": map[string]any{"application": map[string]any{
			"k8sCluster": map[string]any{"clusterName": "main", "k8sNamespace": "ns", "googleProjectId": "proj"},
		}}}
	}))
	r.Post("/logging/v2/entries:list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&listed))
		_, _ = w.Write([]byte(`{"entries":[
			{"timestamp":"2024-05-01T11:59:03Z","severity":"ERROR","textPayload":"third"},
			{"timestamp":"2024-05-01T11:59:02Z","jsonPayload":{"msg":"second","code":7}},
			{"timestamp":"2024-05-01T11:59:01Z","severity":"INFO","textPayload":"first"}
		]}`))
	})
	c := newTestClient(t, r)

	got, err := c.FetchLogEntries(context.Background(), api.LogQuery{
		Application: "app", Namespace: "prod", Version: "green", Since: "5m", Limit: 200,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"projects/proj"}, listed.ResourceNames)
	assert.Equal(t, "timestamp desc", listed.OrderBy)
	assert.Equal(t, 200, listed.PageSize)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Payload)
	assert.Equal(t, "DEFAULT", got[1].Level)
	assert.Equal(t, "{ code: 7, msg: second }", got[1].Payload)
	assert.Equal(t, "third", got[2].Payload)
	assert.Equal(t, "ERROR", got[2].Level)
}

func TestFetchLogEntriesUnknownCluster(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api", graphqlHandler(t, func(graphqlRequest) any {
		return map[string]any{"data": map[string]any{"application": nil}}
	}))
	c := newTestClient(t, r)

	_, err := c.FetchLogEntries(context.Background(), api.LogQuery{Application: "app", Namespace: "prod", Version: "green"})
	require.ErrorIs(t, err, api.ErrNotFound)
}
