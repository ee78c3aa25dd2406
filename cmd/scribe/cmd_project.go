package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Show the project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.project
			config := "(defaults)"
			if p.Found {
				config = "scribe.toml"
			}
			fmt.Printf("Root:      %s %s\n", p.RootDir, config)
			fmt.Printf("Sources:\n")
			for _, dir := range p.SourceDirPaths() {
				fmt.Printf("  %s\n", dir)
			}

			cp, err := p.ClasspathPaths()
			if err != nil {
				return err
			}
			fmt.Printf("Classpath:\n")
			for _, entry := range cp {
				fmt.Printf("  %s\n", entry)
			}

			files, err := p.JavaFiles()
			if err != nil {
				fmt.Printf("Files:     error: %v\n", err)
			} else {
				fmt.Printf("Files:     %d java files\n", len(files))
			}
			return nil
		},
	}
}
