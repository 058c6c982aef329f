package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/core/domain"
)

func TestPlan_Order(t *testing.T) {
	tests := []struct {
		name        string
		outputs     []*domain.PlannedOutput
		targets     []string
		want        []string
		errContains string
	}{
		{
			name: "producers before consumers",
			outputs: []*domain.PlannedOutput{
				{Path: "/p/app.bin", Inputs: []domain.PlannedInput{{Path: "/p/lib.o"}, {Path: "/p/main.c"}}},
				{Path: "/p/lib.o", Inputs: []domain.PlannedInput{{Path: "/p/lib.c"}}},
			},
			want: []string{"/p/lib.o", "/p/app.bin"},
		},
		{
			name: "targets restrict the closure",
			outputs: []*domain.PlannedOutput{
				{Path: "/p/a", Inputs: []domain.PlannedInput{{Path: "/p/src"}}},
				{Path: "/p/b", Inputs: []domain.PlannedInput{{Path: "/p/a"}}},
				{Path: "/p/c", Inputs: []domain.PlannedInput{{Path: "/p/src"}}},
			},
			targets: []string{"/p/b"},
			want:    []string{"/p/a", "/p/b"},
		},
		{
			name: "self cycle",
			outputs: []*domain.PlannedOutput{
				{Path: "/p/a", Inputs: []domain.PlannedInput{{Path: "/p/a"}}},
			},
			errContains: "cycle detected",
		},
		{
			name: "two node cycle",
			outputs: []*domain.PlannedOutput{
				{Path: "/p/a", Inputs: []domain.PlannedInput{{Path: "/p/b"}}},
				{Path: "/p/b", Inputs: []domain.PlannedInput{{Path: "/p/a"}}},
			},
			errContains: "cycle detected",
		},
		{
			name: "unknown target",
			outputs: []*domain.PlannedOutput{
				{Path: "/p/a"},
			},
			targets:     []string{"/p/zzz"},
			errContains: "output not declared in manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewPlan("/p")
			for _, o := range tt.outputs {
				require.NoError(t, p.AddOutput(o))
			}

			order, err := p.Order(tt.targets)
			if tt.errContains != "" {
				require.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)

			got := make([]string, 0, len(order))
			for _, o := range order {
				got = append(got, o.Path)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlan_AddOutputDuplicate(t *testing.T) {
	p := domain.NewPlan("/p")
	require.NoError(t, p.AddOutput(&domain.PlannedOutput{Path: "/p/a"}))

	err := p.AddOutput(&domain.PlannedOutput{Path: "/p/a"})
	require.ErrorContains(t, err, "output already declared")
	assert.True(t, p.IsOutput("/p/a"))
	assert.False(t, p.IsOutput("/p/b"))
}
