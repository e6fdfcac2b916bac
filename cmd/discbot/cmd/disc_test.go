package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscCommandStructure(t *testing.T) {
	assert.NotNil(t, discCmd)
	assert.Equal(t, "disc", discCmd.Name())
	assert.NotEmpty(t, discCmd.Short)
	assert.NotEmpty(t, discCmd.Long)
	assert.NotNil(t, discCmd.RunE)
	assert.NotNil(t, discCmd.Flags().Lookup("raw"))
	assert.Error(t, discCmd.Args(discCmd, nil), "an argument is required")
}

func runDiscOutput(t *testing.T, raw bool, args ...string) string {
	t.Helper()

	origRaw := discRaw
	defer func() { discRaw = origRaw }()
	discRaw = raw

	var buf bytes.Buffer
	discCmd.SetOut(&buf)
	defer discCmd.SetOut(nil)

	require.NoError(t, runDisc(discCmd, args))
	return buf.String()
}

func TestRunDisc(t *testing.T) {
	useTempStore(t)

	t.Run("single match rendered", func(t *testing.T) {
		out := runDiscOutput(t, false, "light", "heal")
		assert.Contains(t, out, "Instruction Disc (Light Heal) [QL 3] will turn into Light Heal [QL 3]")
		assert.Contains(t, out, "(Doctor, Healing, General Shop).")
		assert.NotContains(t, out, "<highlight>")
	})

	t.Run("raw markup", func(t *testing.T) {
		out := runDiscOutput(t, true, "light", "heal")
		assert.Contains(t, out, `<a href="itemref://28601/28601/3">Instruction Disc (Light Heal)</a> will turn into`)
	})

	t.Run("several matches list choices", func(t *testing.T) {
		out := runDiscOutput(t, false, "heal")
		assert.Contains(t, out, "Found 3 matches matching your search")
		assert.Contains(t, out, "/tell Testbot disc [Instruction Disc (Minor Heal)]")
	})

	t.Run("no match", func(t *testing.T) {
		out := runDiscOutput(t, true, "xyzzy")
		assert.Contains(t, out, "Either <highlight>xyzzy<end> was mistyped")
	})
}
