package app

import (
	"log"
	"runtime"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

const (
	NUM_CPUS_FLAG = "cpus"
)

var (
	CPUs int
)

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine: "rnng command [arguments]",
		Short:     "transition-based constituency parsing",
		Subcommands: []*commander.Command{
			OracleCmd(),
			ParseCmd(),
			SampleCmd(),
			GenerateCmd(),
			RescoreCmd(),
		},
		Flag: *flag.NewFlagSet("rnng", flag.ExitOnError),
	}
	for _, sub := range cmd.Subcommands {
		sub.Run = NewAppWrapCommand(sub.Run)
		sub.Flag.IntVar(&CPUs, NUM_CPUS_FLAG, 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
	}
	return cmd
}

func InitCommand(cmd *commander.Command, args []string) {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs {
		log.Printf("Warning: Number of CPUs capped to all available (%d)", maxCPUs)
		CPUs = 0
	}
	if CPUs == 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	wrapped := func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		return f(cmd, args)
	}

	return wrapped
}
