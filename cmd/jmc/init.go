package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmc-lang/jmc/internal/cli/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a new JMC project",
	Long:  "Prompt for a namespace and pack_format and write a starter jmc.yml in the current directory.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if config.InProject() {
		return fmt.Errorf("jmc.yml already exists in this directory")
	}

	var namespace string
	if err := survey.AskOne(&survey.Input{
		Message: "Namespace:",
	}, &namespace, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	var packFormatStr string
	if err := survey.AskOne(&survey.Input{
		Message: "Pack format:",
		Default: "48",
	}, &packFormatStr); err != nil {
		return err
	}
	var packFormat int
	if _, err := fmt.Sscanf(packFormatStr, "%d", &packFormat); err != nil {
		return fmt.Errorf("invalid pack_format: %s", packFormatStr)
	}

	// Written by hand rather than via yaml.Marshal(config.Configuration{})
	// so the on-disk keys match the mapstructure tags Load() expects
	// (pack_format, load_name, private_name) regardless of the struct's Go
	// field names.
	out := fmt.Sprintf(`namespace: %s
pack_format: %d
load_name: __load__
private_name: __private__
`, namespace, packFormat)

	if err := os.WriteFile("jmc.yml", []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write jmc.yml: %w", err)
	}

	color.New(color.FgGreen, color.Bold).Println("✓ Created jmc.yml")
	return nil
}
