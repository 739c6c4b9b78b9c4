package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// runPM builds and executes the package-manager command tree (spec §6's
// vendored-package / registry surface). Each leaf is a documented
// collaborator stub: the registry HTTP client and the dependency
// resolver it would drive are out of this repo's scope (spec.md
// Non-goals), but the argument parsing and command shape are real,
// grounded on the teacher pack's cobra command-group idiom
// (cmd/opm's root command + one NewXxxCmd per verb).
func runPM(args []string) {
	root := newPMRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}

func newPMRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "afns",
		Short:         "AFNS package manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		pmStub("new <name>", "Scaffold a new AFNS project", 1),
		pmStub("build", "Build the project's vendor tree from afml.lock", 0),
		pmStub("clean", "Remove target/vendor and cached build artifacts", 0),
		pmStub("add <package>[@version]", "Add a dependency to afml.toml", 1),
		pmStub("remove <package>", "Remove a dependency from afml.toml", 1),
		pmStub("install", "Resolve and fetch afml.toml's dependencies into target/vendor", 0),
		pmStub("update [package]", "Re-resolve one or all dependencies to their latest allowed version", 0),
		pmStub("tree", "Print the resolved dependency tree", 0),
		pmStub("why <package>", "Explain why a package is in the dependency tree", 1),
		pmStub("outdated", "List dependencies with newer versions available", 0),
		pmStub("publish", "Publish the current project to the configured registry", 0),
		pmStub("login", "Authenticate against APEXRC_REGISTRY", 0),
		pmStub("whoami", "Print the currently authenticated registry user", 0),
		pmStub("registry", "Manage configured package registries", 0),
	)
	return root
}

// pmStub returns a cobra.Command whose RunE reports that its backing
// registry/resolver client isn't part of this repo (spec.md Non-goals:
// "the package registry HTTP server"), taking minArgs positional
// arguments so usage errors are real cobra usage errors, not silent no-ops.
func pmStub(use, short string, minArgs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(minArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%s is not implemented: the package registry client is an external collaborator (see spec.md Non-goals)", cmd.Name())
		},
	}
}
