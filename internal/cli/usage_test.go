package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestHelpTemplate_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, helpTemplate)
}

func TestHelpTemplate_ContainsCommands(t *testing.T) {
	commands := []string{
		"enable",
		"disable",
		"update-state",
		"increment-sprint",
		"check-auto-compact",
		"display-auto-compact",
		"display-state",
		"init",
		"clean",
	}

	for _, command := range commands {
		assert.Contains(t, helpTemplate, command, "Help template should contain command: %s", command)
	}
}

func TestHelpTemplate_ContainsKeyFlags(t *testing.T) {
	requiredFlags := []string{
		"--state-dir",
		"--config",
		"--history-tail",
		"--lock-timeout",
		"--verbose",
		"--no-color",
		"--help",
		"--version",
	}

	for _, flag := range requiredFlags {
		assert.Contains(t, helpTemplate, flag, "Help template should contain flag: %s", flag)
	}
}

func TestHelpTemplate_ContainsExitCodes(t *testing.T) {
	exitCodes := []string{
		"Success",
		"Error",
		"NotInitialized",
		"CorruptState",
		"LockBusy",
		"Interrupted",
	}

	for _, code := range exitCodes {
		assert.Contains(t, helpTemplate, code, "Help template should contain exit code: %s", code)
	}
}

func TestHelpTemplate_ContainsSections(t *testing.T) {
	sections := []string{
		"USAGE",
		"COMMANDS",
		"FLAGS",
		"ENVIRONMENT",
		"EXIT CODES",
		"EXAMPLES",
	}

	for _, section := range sections {
		assert.Contains(t, helpTemplate, section, "Help template should contain section: %s", section)
	}
}

func TestSetCustomHelp(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	SetCustomHelp(cmd)

	assert.Contains(t, cmd.HelpTemplate(), "skynet-loop")
}
