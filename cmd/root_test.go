package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maximthomas/taskboard/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	args := []string{"version", "--config", "../test/taskboard-config-dev.yaml"}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	assert.NoError(t, err)
	conf := config.GetConfig()
	assert.True(t, len(conf.Tasks) > 0)
}

func TestVersionCommand(t *testing.T) {
	defer func(v string) { version = v }(version)
	version = "1.2.3"
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--config", "../test/taskboard-config-dev.yaml"})
	assert.NoError(t, rootCmd.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestTasksCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"tasks", "--config", "../test/taskboard-config-dev.yaml"})
	err := rootCmd.Execute()
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 9, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "twilio-call"))
	assert.Contains(t, lines[7], "Pixel Art Generator")
}
