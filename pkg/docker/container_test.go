package docker_test

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pseudomuto/chbuilder/pkg/clickhouse"
	"github.com/pseudomuto/chbuilder/pkg/consts"
	"github.com/pseudomuto/chbuilder/pkg/docker"
	"github.com/pseudomuto/chbuilder/pkg/grammar"
	"github.com/pseudomuto/chbuilder/pkg/query"
	"github.com/stretchr/testify/require"
)

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	if err := exec.Command("docker", "ps").Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func startContainer(t *testing.T) *docker.Container {
	t.Helper()

	configDir := filepath.Join(t.TempDir(), "config.d")
	require.NoError(t, os.MkdirAll(configDir, consts.ModeDir))

	configContent := `<?xml version="1.0"?>
<clickhouse>
    <logger>
        <level>warning</level>
        <console>true</console>
    </logger>
</clickhouse>`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "logger.xml"), []byte(configContent), consts.ModeFile))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ch := docker.New(docker.Options{Database: "analytics", ConfigDir: configDir})
	require.NoError(t, ch.Start(ctx))
	require.True(t, ch.IsRunning())

	t.Cleanup(func() {
		require.NoError(t, ch.Stop(context.Background()))
	})

	return ch
}

func TestContainerNotRunning(t *testing.T) {
	ctx := context.Background()
	ch := docker.New(docker.Options{})

	require.False(t, ch.IsRunning())
	require.NoError(t, ch.Stop(ctx))

	_, err := ch.GetDSN(ctx)
	require.EqualError(t, err, "container is not running")

	_, err = ch.GetHTTPDSN(ctx)
	require.EqualError(t, err, "container is not running")
}

func TestCompiledStatementsRoundTrip(t *testing.T) {
	skipIfNoDocker(t)

	ch := startContainer(t)
	ctx := context.Background()

	dsn, err := ch.GetDSN(ctx)
	require.NoError(t, err)

	client, err := clickhouse.NewClient(ctx, clickhouse.ClientOptions{DSN: dsn})
	require.NoError(t, err)
	defer func() { require.NoError(t, client.Close()) }()

	version, err := client.GetVersion(ctx)
	require.NoError(t, err)
	require.True(t, version.SupportsQueryParameters())

	table := grammar.CreateTable{
		Name:        "analytics.events",
		IfNotExists: true,
		Columns: []grammar.ColumnDef{
			{Name: "id", Type: "UInt64"},
			{Name: "event", Type: "String"},
			{Name: "amount", Type: "Float64", Default: "0"},
		},
		Engine: "MergeTree() ORDER BY id",
	}
	require.NoError(t, client.CreateTable(ctx, table))
	defer func() {
		require.NoError(t, client.DropTable(ctx, grammar.DropTable{Name: table.Name, IfExists: true}))
	}()

	require.NoError(t, client.Insert(ctx, client.NewQuery().Table(table.Name),
		[]string{"id", "event", "amount"},
		[][]any{
			{1, "purchase", 150.5},
			{2, "view", 0},
			{3, "purchase", 20},
		},
	))

	sel := client.NewQuery().
		Select("event", query.Col("amount").Sum().As("total")).
		From(table.Name).
		Where("event", "purchase").
		Where("amount", ">", 10).
		GroupBy("event")

	rows, err := client.Select(ctx, sel)
	require.NoError(t, err)
	defer rows.Close()

	var (
		event string
		total float64
	)
	require.True(t, rows.Next())
	require.NoError(t, rows.Scan(&event, &total))
	require.Equal(t, "purchase", event)
	require.InDelta(t, 170.5, total, 0.001)
	require.False(t, rows.Next())
	require.NoError(t, rows.Err())

	require.NoError(t, client.Delete(ctx, client.NewQuery().From(table.Name).Where("event", "view")))
}

func TestHTTPInterfaceParameters(t *testing.T) {
	skipIfNoDocker(t)

	ch := startContainer(t)
	ctx := context.Background()

	base, err := ch.GetHTTPDSN(ctx)
	require.NoError(t, err)

	b := query.New().Select(query.ColExpr(query.Func("plus", query.Ident("number"), 1)).As("n")).
		From("system.numbers").
		Where("number", "<", 3).
		Limit(3).
		Format("TabSeparated")

	sql, err := grammar.CompileSelect(b)
	require.NoError(t, err)

	values := b.Registry().HTTPValues()
	values.Set("query", sql)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/?"+values.Encode(), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.Equal(t, []string{"1", "2", "3"}, strings.Fields(string(body)))
}
