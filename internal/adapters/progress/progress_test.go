package progress_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/depcache/internal/adapters/progress"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestRecorder_Lifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := new(bytes.Buffer)
	rec := progress.New(buf)

	ok := rec.Start("out/a.o")
	_, err := fmt.Fprintln(ok.Log(), "signature 0A1B")
	require.NoError(t, err)
	ok.Done(nil)

	cached := rec.Start("out/b.o")
	cached.Cached()
	cached.Done(nil)

	failed := rec.Start("out/c.o")
	failed.Done(errors.New("required input missing"))

	require.NoError(t, rec.Close())
	assert.Equal(t, "✓ out/a.o\n    signature 0A1B\n○ out/b.o\n✗ out/c.o: required input missing\n", buf.String())
}

func TestRecorder_SetOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	rec := progress.New(io.Discard)
	rec.Start("out/quiet.o").Done(nil)

	buf := new(bytes.Buffer)
	rec.SetOutput(buf)
	rec.Start("out/loud.o").Done(nil)

	assert.Equal(t, "✓ out/loud.o\n", buf.String())
}

func TestRecorder_RestartedItem(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := new(bytes.Buffer)
	rec := progress.New(buf)

	first := rec.Start("out/a.o")
	first.Cached()
	first.Done(nil)

	second := rec.Start("out/a.o")
	_, _ = fmt.Fprint(second.Log(), "rebuilt")
	second.Done(nil)

	assert.Equal(t, "○ out/a.o\n✓ out/a.o\n    rebuilt\n", buf.String())
}

func TestPrinter_WriteStatus(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	msg := "no such file"
	now := timestamppb.Now()

	tests := []struct {
		name    string
		updates []*progrock.StatusUpdate
		want    string
	}{
		{
			name: "running vertex prints nothing",
			updates: []*progrock.StatusUpdate{
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Started: now}}},
				{Logs: []*progrock.VertexLog{{Vertex: "v1", Data: []byte("partial\n")}}},
			},
			want: "",
		},
		{
			name: "logs follow the completion line",
			updates: []*progrock.StatusUpdate{
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Started: now}}},
				{Logs: []*progrock.VertexLog{{Vertex: "v1", Data: []byte("src/a.c\nflags -O2\n")}}},
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Started: now, Completed: now}}},
			},
			want: "✓ out/a.o\n    src/a.c\n    flags -O2\n",
		},
		{
			name: "failed vertex",
			updates: []*progrock.StatusUpdate{
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Error: &msg}}},
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Error: &msg, Completed: now}}},
			},
			want: "✗ out/a.o: no such file\n",
		},
		{
			name: "canceled vertex",
			updates: []*progrock.StatusUpdate{
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Canceled: true, Completed: now}}},
			},
			want: "! out/a.o canceled\n",
		},
		{
			name: "repeated completion prints once",
			updates: []*progrock.StatusUpdate{
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Cached: true, Completed: now}}},
				{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "out/a.o", Cached: true, Completed: now}}},
			},
			want: "○ out/a.o\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			p := progress.NewPrinter(buf)
			for _, u := range tt.updates {
				require.NoError(t, p.WriteStatus(u))
			}
			assert.Equal(t, tt.want, buf.String())
			assert.False(t, strings.Contains(buf.String(), "\x1b["), "NO_COLOR output is plain")
		})
	}
}
