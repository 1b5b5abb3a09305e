package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_Apply(t *testing.T) {
	out := &bytes.Buffer{}
	Register(&cobra.Command{
		Use: "test:registry",
		Run: func(c *cobra.Command, args []string) {
			c.Print("ok")
		},
	})
	Apply()

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"test:registry"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ok", out.String())

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["products:import"])
	assert.True(t, names["cron:start"])

	assert.Panics(t, func() { Register(&cobra.Command{Use: "late"}) })
}
