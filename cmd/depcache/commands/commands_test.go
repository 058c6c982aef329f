package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/cmd/depcache/commands"
	"go.trai.ch/depcache/internal/adapters/logger"
	"go.trai.ch/depcache/internal/adapters/progress"
	"go.trai.ch/depcache/internal/adapters/settings"
	"go.trai.ch/depcache/internal/app"
	"go.trai.ch/depcache/internal/build"
	"go.trai.ch/depcache/internal/core/domain"
)

type mockApp struct {
	statusFunc func(ctx context.Context, targets []string) ([]app.OutputStatus, error)
	signFunc   func(ctx context.Context, targets []string, trap bool) ([]app.SignatureResult, error)
	commitFunc func(ctx context.Context, targets []string) ([]string, error)
	graphFunc  func(ctx context.Context, target string) ([]domain.GraphRow, error)
	watchFunc  func(ctx context.Context, targets []string, onChange func([]app.OutputStatus)) error
	cleanFunc  func(ctx context.Context) error
}

func (m *mockApp) Status(ctx context.Context, targets []string) ([]app.OutputStatus, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, targets)
	}
	return nil, nil
}

func (m *mockApp) Sign(ctx context.Context, targets []string, trap bool) ([]app.SignatureResult, error) {
	if m.signFunc != nil {
		return m.signFunc(ctx, targets, trap)
	}
	return nil, nil
}

func (m *mockApp) Commit(ctx context.Context, targets []string) ([]string, error) {
	if m.commitFunc != nil {
		return m.commitFunc(ctx, targets)
	}
	return nil, nil
}

func (m *mockApp) Graph(ctx context.Context, target string) ([]domain.GraphRow, error) {
	if m.graphFunc != nil {
		return m.graphFunc(ctx, target)
	}
	return nil, nil
}

func (m *mockApp) Watch(ctx context.Context, targets []string, onChange func([]app.OutputStatus)) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, targets, onChange)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func execute(t *testing.T, cli *commands.CLI, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cli.SetArgs(args)
	cli.SetOutput(out, new(bytes.Buffer))
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Status(t *testing.T) {
	t.Parallel()

	statuses := []app.OutputStatus{
		{Path: "/p/fresh.bin", UpToDate: true},
		{Path: "/p/stale.bin"},
		{Path: "/p/broken.bin", Err: errors.New("input gone")},
	}

	t.Run("prints one line per output", func(t *testing.T) {
		t.Parallel()
		var captured []string
		mock := &mockApp{statusFunc: func(_ context.Context, targets []string) ([]app.OutputStatus, error) {
			captured = targets
			return statuses, nil
		}}

		out, err := execute(t, commands.New(mock), "status", "fresh.bin", "stale.bin")
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh.bin", "stale.bin"}, captured)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "✓")
		assert.Contains(t, lines[0], "/p/fresh.bin")
		assert.Contains(t, lines[1], "✗")
		assert.Contains(t, lines[2], "input gone")
	})

	t.Run("exit code on stale outputs", func(t *testing.T) {
		t.Parallel()
		mock := &mockApp{statusFunc: func(context.Context, []string) ([]app.OutputStatus, error) {
			return statuses, nil
		}}

		_, err := execute(t, commands.New(mock), "status", "--exit-code")
		require.ErrorIs(t, err, domain.ErrOutOfDate)
	})

	t.Run("exit code when everything is fresh", func(t *testing.T) {
		t.Parallel()
		mock := &mockApp{statusFunc: func(context.Context, []string) ([]app.OutputStatus, error) {
			return statuses[:1], nil
		}}

		_, err := execute(t, commands.New(mock), "status", "--exit-code")
		require.NoError(t, err)
	})

	t.Run("returns load errors", func(t *testing.T) {
		t.Parallel()
		mock := &mockApp{statusFunc: func(context.Context, []string) ([]app.OutputStatus, error) {
			return nil, errors.New("simulated error")
		}}

		_, err := execute(t, commands.New(mock), "status")
		require.ErrorContains(t, err, "simulated error")
	})
}

func TestCommands_StatusOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	mock := &mockApp{statusFunc: func(context.Context, []string) ([]app.OutputStatus, error) {
		return []app.OutputStatus{
			{Path: "/p/fresh.bin", UpToDate: true},
			{Path: "/p/stale.bin"},
			{Path: "/p/broken.bin", Err: errors.New("input gone")},
		}, nil
	}}

	out, err := execute(t, commands.New(mock), "status")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "status", []byte(out))
}

func TestCommands_Sign(t *testing.T) {
	t.Parallel()

	var trapped bool
	mock := &mockApp{signFunc: func(_ context.Context, _ []string, trap bool) ([]app.SignatureResult, error) {
		trapped = trap
		return []app.SignatureResult{
			{Path: "/p/a.bin", Signature: "0123456789ABCDEF", Trace: []string{"/p/src.c", "/p/a.bin 1"}},
			{Path: "/p/leaf.txt"},
		}, nil
	}}

	out, err := execute(t, commands.New(mock), "sign", "--trap", "--trace")
	require.NoError(t, err)
	assert.True(t, trapped)
	assert.Contains(t, out, "0123456789ABCDEF")
	assert.Contains(t, out, "    /p/src.c\n")
	assert.Contains(t, out, "/p/leaf.txt")

	out, err = execute(t, commands.New(mock), "sign")
	require.NoError(t, err)
	assert.False(t, trapped)
	assert.NotContains(t, out, "/p/src.c", "trace is opt-in")
}

func TestCommands_Commit(t *testing.T) {
	t.Parallel()

	mock := &mockApp{commitFunc: func(_ context.Context, targets []string) ([]string, error) {
		return append([]string{"/p/dep.bin"}, targets...), nil
	}}

	out, err := execute(t, commands.New(mock), "commit", "/p/top.bin")
	require.NoError(t, err)
	assert.Contains(t, out, "/p/dep.bin")
	assert.Contains(t, out, "/p/top.bin")

	failing := &mockApp{commitFunc: func(context.Context, []string) ([]string, error) {
		return nil, domain.ErrCommitFailed
	}}
	_, err = execute(t, commands.New(failing), "commit")
	require.ErrorIs(t, err, domain.ErrCommitFailed)
}

func TestCommands_Graph(t *testing.T) {
	t.Parallel()

	mock := &mockApp{graphFunc: func(_ context.Context, target string) ([]domain.GraphRow, error) {
		assert.Equal(t, "out.bin", target)
		return []domain.GraphRow{
			{
				Edge:  domain.GraphEdge{OrderIndex: 0, InLastModified: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).UnixNano(), Existed: true},
				Input: domain.FileRecord{Path: "/p/in.txt"},
			},
			{
				Edge:  domain.GraphEdge{OrderIndex: 1, CanBeMissing: true},
				Input: domain.FileRecord{Path: "/p/README.md"},
			},
		}, nil
	}}

	out, err := execute(t, commands.New(mock), "graph", "out.bin")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "graph", []byte(out))

	empty := &mockApp{graphFunc: func(context.Context, string) ([]domain.GraphRow, error) {
		return nil, nil
	}}
	out, err = execute(t, commands.New(empty), "graph", "out.bin")
	require.NoError(t, err)
	g.Assert(t, "graph_empty", []byte(out))

	_, err = execute(t, commands.New(mock), "graph")
	require.Error(t, err, "graph takes exactly one output")
}

func TestCommands_Watch(t *testing.T) {
	t.Parallel()

	t.Run("prints every batch", func(t *testing.T) {
		t.Parallel()
		mock := &mockApp{watchFunc: func(_ context.Context, _ []string, onChange func([]app.OutputStatus)) error {
			onChange([]app.OutputStatus{{Path: "/p/a.bin"}})
			onChange([]app.OutputStatus{{Path: "/p/a.bin", UpToDate: true}})
			return nil
		}}

		out, err := execute(t, commands.New(mock), "watch")
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "/p/a.bin"))
	})

	t.Run("serves metrics while watching", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().String()
		require.NoError(t, ln.Close())

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("depcache_commits_total 1\n"))
		})

		var body string
		mock := &mockApp{watchFunc: func(ctx context.Context, _ []string, _ func([]app.OutputStatus)) error {
			assert.Eventually(t, func() bool {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/metrics", nil)
				if err != nil {
					return false
				}
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return false
				}
				defer func() { _ = resp.Body.Close() }()
				buf := new(bytes.Buffer)
				_, _ = buf.ReadFrom(resp.Body)
				body = buf.String()
				return resp.StatusCode == http.StatusOK
			}, 5*time.Second, 20*time.Millisecond)
			return nil
		}}

		_, err = execute(t, commands.New(mock, commands.WithMetrics(handler)), "watch", "--metrics-addr", addr)
		require.NoError(t, err)
		assert.Contains(t, body, "depcache_commits_total")
	})
}

func TestCommands_Clean(t *testing.T) {
	t.Parallel()

	called := false
	mock := &mockApp{cleanFunc: func(context.Context) error {
		called = true
		return nil
	}}

	_, err := execute(t, commands.New(mock), "clean")
	require.NoError(t, err)
	assert.True(t, called)

	_, err = execute(t, commands.New(mock), "clean", "extra")
	require.Error(t, err)
}

func TestCommands_GlobalFlags(t *testing.T) {
	t.Parallel()

	cfg := settings.LoadSettings()
	cfg.SetDSN("")
	log := logger.New()
	logs := new(bytes.Buffer)
	log.SetOutput(logs)

	var dsn string
	mock := &mockApp{cleanFunc: func(context.Context) error {
		dsn = cfg.DSN()
		log.Info("cleaning")
		return nil
	}}

	cli := commands.New(mock, commands.WithSettings(cfg), commands.WithLogger(log))
	_, err := execute(t, cli, "--db", "postgres://localhost/graph", "--json", "clean")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/graph", dsn)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(logs.String()), "{"), logs.String())
}

func TestCommands_ProgressFlag(t *testing.T) {
	t.Parallel()

	rec := progress.New(io.Discard)
	mock := &mockApp{commitFunc: func(context.Context, []string) ([]string, error) {
		rec.Start("/p/a.bin").Done(nil)
		return []string{"/p/a.bin"}, nil
	}}

	for _, tt := range []struct {
		args []string
		want bool
	}{
		{[]string{"commit"}, false},
		{[]string{"--progress", "commit"}, true},
		{[]string{"--progress=false", "commit"}, false},
	} {
		stderr := new(bytes.Buffer)
		cli := commands.New(mock, commands.WithProgress(rec))
		cli.SetArgs(tt.args)
		cli.SetOutput(new(bytes.Buffer), stderr)
		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, tt.want, strings.Contains(stderr.String(), "/p/a.bin"), tt.args)
	}
}

func TestCommands_Version(t *testing.T) {
	t.Parallel()

	out, err := execute(t, commands.New(&mockApp{}), "version")
	require.NoError(t, err)
	assert.Equal(t, "depcache version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, commands.New(&mockApp{}), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "depcache version "+build.Version)
}
