package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/confedit/internal/apitest"
	"github.com/pluqqy/confedit/pkg/api"
	"github.com/pluqqy/confedit/pkg/jsondoc"
)

func newClient(t *testing.T, srv *apitest.Server) *api.Client {
	t.Helper()
	client, err := api.NewClient(srv.URL, api.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client
}

func TestNewClientValidatesURL(t *testing.T) {
	_, err := api.NewClient("")
	assert.Error(t, err)

	_, err = api.NewClient("ftp://example.com")
	assert.Error(t, err)

	client, err := api.NewClient("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", client.BaseURL())
}

func TestGetConfig(t *testing.T) {
	srv := apitest.NewServer(t, `{"name":"demo","ports":[80,443]}`)
	client := newClient(t, srv)

	doc, err := client.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "ports"}, doc.Keys())
	name, ok := doc.Get("name")
	require.True(t, ok)
	assert.Equal(t, "demo", name.Str())
}

func TestGetConfigReportsServerError(t *testing.T) {
	srv := apitest.NewServer(t, "")
	client := newClient(t, srv)

	_, err := client.GetConfig(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Config file not found", apiErr.Message)
	assert.True(t, api.IsAPIError(err))
	assert.False(t, api.IsTransportError(err))
}

func TestGetConfigFalsyErrorMember(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"false", `{"error": false, "level": "info"}`},
		{"null", `{"error": null, "level": "info"}`},
		{"empty string", `{"error": "", "level": "info"}`},
		{"zero", `{"error": 0, "level": "info"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, tt.doc)
			client := newClient(t, srv)

			doc, err := client.GetConfig(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"error", "level"}, doc.Keys())
		})
	}
}

func TestGetConfigTruthyErrorMember(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		message string
	}{
		{"string", `{"error": "disk full"}`, "disk full"},
		{"true", `{"error": true}`, "true"},
		{"number", `{"error": 2}`, "2"},
		{"object", `{"error": {}}`, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, tt.doc)
			client := newClient(t, srv)

			_, err := client.GetConfig(context.Background())
			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestSaveConfigReturnsBackupName(t *testing.T) {
	srv := apitest.NewServer(t, `{"a":1}`)
	srv.SetClock(func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) })
	client := newClient(t, srv)

	doc, err := jsondoc.Parse(`{"a":2}`)
	require.NoError(t, err)

	backup, err := client.SaveConfig(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "config_backup_20240101_120000.json", backup)
	assert.Equal(t, "{\n  \"a\": 2\n}", srv.Config())

	backups, err := client.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "config_backup_20240101_120000.json", backups[0].Filename)
	assert.Equal(t, int64(len("{\n  \"a\": 1\n}")), backups[0].SizeBytes)
	assert.True(t, backups[0].ModifiedAt.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestSaveConfigServerError(t *testing.T) {
	srv := apitest.NewServer(t, `{"a":1}`)
	srv.FailWith("POST /api/config", http.StatusInternalServerError, "Failed to save: disk full")
	client := newClient(t, srv)

	_, err := client.SaveConfig(context.Background(), jsondoc.ObjectValue(jsondoc.Member{Key: "a", Value: jsondoc.IntValue(3)}))
	require.Error(t, err)
	assert.Equal(t, "Failed to save: disk full", err.Error())
	assert.Equal(t, "{\n  \"a\": 1\n}", srv.Config(), "failed save must not change the stored document")
}

func TestListBackupsSortedNewestFirst(t *testing.T) {
	srv := apitest.NewServer(t, `{}`)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	srv.AddBackup("config_backup_old.json", `{"v":1}`, base)
	srv.AddBackup("config_backup_new.json", `{"v":2}`, base.Add(time.Hour))
	client := newClient(t, srv)

	backups, err := client.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, "config_backup_new.json", backups[0].Filename)
	assert.Equal(t, "new", backups[0].DisplayName())
	assert.Equal(t, "config_backup_old.json", backups[1].Filename)
}

func TestListBackupsRejectsUnexpectedShape(t *testing.T) {
	srv := apitest.NewServer(t, `{}`)
	srv.RespondRaw("GET /api/backups", http.StatusOK, `{"items":[]}`)
	client := newClient(t, srv)

	_, err := client.ListBackups(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsAPIError(err))
}

func TestRestoreBackup(t *testing.T) {
	srv := apitest.NewServer(t, `{"v":"current"}`)
	srv.AddBackup("config_backup_X.json", `{"v":"restored"}`, time.Now().Add(-time.Hour))
	client := newClient(t, srv)

	require.NoError(t, client.RestoreBackup(context.Background(), "config_backup_X.json"))
	assert.Equal(t, "{\n  \"v\": \"restored\"\n}", srv.Config())

	err := client.RestoreBackup(context.Background(), "config_backup_missing.json")
	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Backup not found", apiErr.Message)

	assert.Error(t, client.RestoreBackup(context.Background(), ""))
}

func TestTransportErrors(t *testing.T) {
	srv := apitest.NewServer(t, `{}`)
	client := newClient(t, srv)
	srv.Close()

	_, err := client.GetConfig(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsTransportError(err))
}

func TestNonJSONSuccessIsTransportError(t *testing.T) {
	srv := apitest.NewServer(t, `{}`)
	srv.RespondRaw("GET /api/config", http.StatusOK, "<html>proxy login</html>")
	client := newClient(t, srv)

	_, err := client.GetConfig(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsTransportError(err))
}

func TestNonJSONFailureStatusIsAPIError(t *testing.T) {
	srv := apitest.NewServer(t, `{}`)
	srv.RespondRaw("GET /api/config", http.StatusBadGateway, "bad gateway")
	client := newClient(t, srv)

	_, err := client.GetConfig(context.Background())
	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "502 Bad Gateway", apiErr.Message)
}

func TestRequestsCarryRequestID(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get(api.RequestIDHeader))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	client, err := api.NewClient(ts.URL, api.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	_, err = client.GetConfig(context.Background())
	require.NoError(t, err)
	_, err = client.GetConfig(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEqual(t, seen[0], seen[1])
}

func TestTimeoutBoundsRequest(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	client, err := api.NewClient(ts.URL, api.WithHTTPClient(ts.Client()), api.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.GetConfig(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsTransportError(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
