package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "argodb", cmd.Use,
		"Command name should be argodb")
}

func TestGetRootCmd_Version(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "v1.2.3"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should contain version")
}

func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "argodb",
		"Help should mention argodb")
	assert.Contains(t, helpText, "NetCDF",
		"Help should mention NetCDF")
	assert.Contains(t, helpText, "PostgreSQL",
		"Help should mention PostgreSQL")
	assert.Contains(t, helpText, "ARGODB_",
		"Help should mention environment variables")
}

func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "create")
	assert.Contains(t, names, "ingest")
	assert.Contains(t, names, "status")
}

func TestGetIngestCmd_Flags(t *testing.T) {
	cmd := getIngestCmd()
	require.NotNil(t, cmd.RunE, "Ingest command should have RunE")

	assert.NotNil(t, cmd.Flags().Lookup("data-dir"),
		"Ingest should have --data-dir flag")
	assert.NotNil(t, cmd.Flags().Lookup("replace"),
		"Ingest should have --replace flag")
}

func TestGetCreateCmd_Flags(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd.RunE, "Create command should have RunE")

	flag := cmd.Flags().Lookup("force")
	require.NotNil(t, flag, "Create should have --force flag")
	assert.Equal(t, "f", flag.Shorthand)
}

func TestGetStatusCmd(t *testing.T) {
	cmd := getStatusCmd()
	require.NotNil(t, cmd.RunE, "Status command should have RunE")
	assert.Contains(t, cmd.Short, "counts")
}
