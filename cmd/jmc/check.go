package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmc-lang/jmc/internal/cli/config"
	"github.com/jmc-lang/jmc/internal/compile/lexer"
	"github.com/jmc-lang/jmc/internal/compile/session"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a JMC entry point for errors",
	Long:  "Run the lexical pipeline over the given .jmc entry point and report the result, without emitting any datapack resources.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	entry := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load jmc.yml: %w", err)
	}

	sess := session.New(*cfg)
	lx := lexer.New(sess, nil)

	if derr := lx.Compile(entry); derr != nil {
		if derr.Kind.IsWarning() {
			color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), derr.Error())
		} else {
			color.New(color.FgRed, color.Bold).Fprintln(cmd.OutOrStdout(), derr.Error())
		}
		return fmt.Errorf("check failed: %s", derr.Kind)
	}

	color.New(color.FgGreen, color.Bold).Fprintln(cmd.OutOrStdout(), "Ok")
	return nil
}
