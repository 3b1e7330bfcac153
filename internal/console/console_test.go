package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		line string
		want [][]string
	}{
		{"", nil},
		{"   ", nil},
		{"r_width 1024", [][]string{{"r_width", "1024"}}},
		{"a 1; b 2;;", [][]string{{"a", "1"}, {"b", "2"}}},
		{`echo "hello world" 'x;y'`, [][]string{{"echo", "hello world", "x;y"}}},
		{`echo ""`, [][]string{{"echo", ""}}},
		{"\techo\tx\n", [][]string{{"echo", "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Split(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Split(`echo "open`)
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestVariables(t *testing.T) {
	var out bytes.Buffer
	c := New(WithOutput(&out), WithVars(map[string]float64{"r_DebugDraw": 2}))

	assert.Equal(t, float64(2), c.GetVar("R_DEBUGDRAW"))
	assert.Zero(t, c.GetVar("missing"))

	require.NoError(t, c.ExecuteString("r_DebugDraw 0; r_Gamma 1.5; sys_Paused on"))
	assert.Zero(t, c.GetVar("r_DebugDraw"))
	assert.Equal(t, 1.5, c.GetVar("r_gamma"))
	assert.Equal(t, float64(1), c.GetVar("sys_Paused"))

	require.NoError(t, c.ExecuteString("r_Gamma"))
	assert.Equal(t, "r_Gamma = 1.5\n", out.String())

	assert.Equal(t, map[string]float64{"r_DebugDraw": 0, "r_Gamma": 1.5, "sys_Paused": 1}, c.Vars())
}

func TestExecuteErrors(t *testing.T) {
	c := New(WithOutput(&bytes.Buffer{}))

	assert.ErrorIs(t, c.ExecuteString("nothing_here"), ErrUnknownCommand)
	assert.ErrorIs(t, c.ExecuteString("r_width wide"), ErrBadValue)
	assert.ErrorIs(t, c.ExecuteString(`echo "x`), ErrUnterminated)

	require.Error(t, c.ExecuteString("a 1; nope; b 2"))
	assert.Equal(t, float64(1), c.GetVar("a"))
	assert.False(t, c.HasVar("b"), "execution stops at the failing statement")
}

func TestBuiltins(t *testing.T) {
	var out bytes.Buffer
	c := New(WithOutput(&out))

	require.NoError(t, c.ExecuteString("echo hello  world"))
	require.NoError(t, c.ExecuteString("set v 3; toggle v; toggle w"))
	assert.Zero(t, c.GetVar("v"))
	assert.Equal(t, float64(1), c.GetVar("w"))
	assert.Error(t, c.ExecuteString("set v"))
	assert.Error(t, c.ExecuteString("toggle"))

	assert.Equal(t, "hello world\n", out.String())
	assert.Equal(t, []string{"echo", "help", "set", "toggle"}, c.Commands())
}

func TestRegister(t *testing.T) {
	c := New(WithOutput(&bytes.Buffer{}))

	var got []string
	require.NoError(t, c.Register("Reload", "reload: reload macros", func(_ *Console, args []string) error {
		got = args
		return nil
	}))
	assert.ErrorIs(t, c.Register("reload", "", nil), ErrDuplicateCommand)
	assert.ErrorIs(t, c.Register("echo", "", nil), ErrDuplicateCommand)

	require.NoError(t, c.ExecuteString("RELOAD all now"))
	assert.Equal(t, []string{"all", "now"}, got)
}
