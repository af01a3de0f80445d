// Test Type: Unit Test
// Description: Tests for destination template expansion

package paths_test

import (
	"testing"

	"github.com/arthur-debert/neostow/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func envOf(pairs ...string) func() []string {
	return func() []string { return pairs }
}

func TestExpander_Expand(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		raw     string
		want    string
	}{
		{
			name:    "home_variable",
			environ: []string{"HOME=/home/u"},
			raw:     "$HOME/x",
			want:    "/home/u/x",
		},
		{
			name:    "tilde",
			environ: []string{"HOME=/home/u"},
			raw:     "~/x",
			want:    "/home/u/x",
		},
		{
			name:    "bare_tilde",
			environ: []string{"HOME=/home/u"},
			raw:     "~",
			want:    "/home/u",
		},
		{
			name:    "tilde_without_home_stays_literal",
			environ: []string{"USER=u"},
			raw:     "~/x",
			want:    "~/x",
		},
		{
			name:    "tilde_only_expanded_at_start",
			environ: []string{"HOME=/home/u"},
			raw:     "/opt/~/x",
			want:    "/opt/~/x",
		},
		{
			name:    "unknown_variable_left_alone",
			environ: []string{"HOME=/home/u"},
			raw:     "$NOPE/x",
			want:    "$NOPE/x",
		},
		{
			name:    "every_occurrence_replaced",
			environ: []string{"A=1"},
			raw:     "$A/$A/$A",
			want:    "1/1/1",
		},
		{
			name:    "several_variables",
			environ: []string{"XDG_CONFIG_HOME=/home/u/.config", "APP=nvim"},
			raw:     "$XDG_CONFIG_HOME/$APP",
			want:    "/home/u/.config/nvim",
		},
		{
			name:    "longest_name_wins",
			environ: []string{"HOME=/home/u", "HOMEDIR=/srv/home"},
			raw:     "$HOMEDIR/x",
			want:    "/srv/home/x",
		},
		{
			name:    "literal_prefix_match",
			environ: []string{"HOME=/home/u"},
			raw:     "$HOMEX",
			want:    "/home/uX",
		},
		{
			name:    "no_recursive_expansion",
			environ: []string{"A=$B", "B=boom"},
			raw:     "$A/x",
			want:    "$B/x",
		},
		{
			name:    "substituted_tilde_expands",
			environ: []string{"HOME=/home/u", "DEST=~/conf"},
			raw:     "$DEST",
			want:    "/home/u/conf",
		},
		{
			name:    "value_with_equals_sign",
			environ: []string{"OPTS=a=b"},
			raw:     "$OPTS",
			want:    "a=b",
		},
		{
			name:    "dangling_dollar",
			environ: []string{"HOME=/home/u"},
			raw:     "/tmp/$",
			want:    "/tmp/$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &paths.Expander{Environ: envOf(tt.environ...)}
			assert.Equal(t, tt.want, e.Expand(tt.raw))
		})
	}
}

func TestExpand_ProcessEnvironment(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	t.Setenv("NEOSTOW_TEST_DIR", "/data")

	assert.Equal(t, "/home/u/x", paths.Expand("$HOME/x"))
	assert.Equal(t, "/home/u/x", paths.Expand("~/x"))
	assert.Equal(t, "/data/conf", paths.Expand("$NEOSTOW_TEST_DIR/conf"))
}
