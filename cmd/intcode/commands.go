package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Command returns the root command of the application.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           AppName,
		Short:         "Run and inspect intcode programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	c := a.config
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML file with configuration overrides.")
	pf.StringVar(&c.Features, "features", c.Features, "Instruction set: basic, diagnostic or extended.")
	pf.IntVar(&c.Headroom, "headroom", c.Headroom, "Number of zeroed memory cells appended to the program.")
	pf.IntVar(&c.MemoryLimit, "memory-limit", c.MemoryLimit, "Highest addressable memory cell + 1.")
	pf.Uint64Var(&c.MaxSteps, "max-steps", c.MaxSteps, "Instruction budget per machine. 0 means unlimited.")
	pf.BoolVar(&c.Trace, "trace", c.Trace, "Print instruction trace data to stderr.")
	pf.BoolVar(&c.Verbose, "verbose", c.Verbose, "Log progress information.")

	root.AddCommand(
		a.runCommand(),
		a.amplifyCommand(),
		a.searchCommand(),
		a.disasmCommand(),
		a.versionCommand(),
	)

	return root
}

func (a *App) runCommand() *cobra.Command {
	var opt runOptions

	cmd := &cobra.Command{
		Use:   "run <program file>",
		Short: "Run a program and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.run(args[0], &opt)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opt.Input, "input", "", "Comma-separated list of input values.")
	f.BoolVar(&opt.Suspend, "suspend", false, "Print each output value as soon as it is produced.")
	f.StringSliceVar(&opt.Patches, "patch", nil, "addr=value pairs written to memory before execution.")
	f.IntSliceVar(&opt.Show, "show", nil, "Memory addresses to print after execution.")
	return cmd
}

func (a *App) amplifyCommand() *cobra.Command {
	var opt amplifyOptions

	cmd := &cobra.Command{
		Use:   "amplify <program file>",
		Short: "Find the highest signal an amplifier circuit can produce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.amplify(cmd.Context(), args[0], &opt)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opt.Phases, "phases", "", "Comma-separated phase settings. Defaults to 0-4, or 5-9 with --feedback.")
	f.BoolVar(&opt.Feedback, "feedback", false, "Feed the last amplifier's output back into the first.")
	f.BoolVar(&opt.Fixed, "fixed", false, "Use the phase settings in the given order instead of searching.")
	return cmd
}

func (a *App) searchCommand() *cobra.Command {
	var opt searchOptions

	cmd := &cobra.Command{
		Use:   "search <program file>",
		Short: "Find the noun and verb which produce a target value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.search(cmd.Context(), args[0], &opt)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opt.Target, "target", 0, "Value expected at address 0.")
	f.Int64Var(&opt.Max, "max", 99, "Highest noun and verb value to try.")
	cmd.MarkFlagRequired("target")
	return cmd
}

func (a *App) disasmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <program file>",
		Short: "Print a program listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.disasm(args[0])
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(a.out, Version())
		},
	}
}
