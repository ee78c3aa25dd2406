package main

import (
	"os"

	"github.com/dhamidi/scribe/project"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("scribe")

type options struct {
	dir     string
	verbose int
	project *project.Project
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "scribe",
		Short:        "Byte-code names and descriptors for Java sources",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "directory to look for scribe.toml in")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newNameCmd(opts))
	rootCmd.AddCommand(newFindCmd(opts))
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newProjectCmd(opts))
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the project configuration and sets up logging. Flags take
// precedence over scribe.toml.
func (o *options) load() error {
	p, err := project.FindAndLoad(o.dir)
	if err != nil {
		return err
	}
	o.project = p

	verbosity := p.Log.Verbosity
	if o.verbose > 0 {
		verbosity = o.verbose
	}
	commonlog.Configure(verbosity, p.LogFile())
	log.Debugf("project root %s", p.RootDir)
	return nil
}
