package main

import (
	"fmt"

	"github.com/dhamidi/scribe/classpath"
	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *options) *cobra.Command {
	var entries []string

	cmd := &cobra.Command{
		Use:   "verify [file.java...]",
		Short: "Compare encoded names and descriptors with compiled classes",
		Long: `Encode every declaration of the project and look the result up in the
compiled classes on the classpath. Classes, methods and fields that the
compiler named differently are reported.

The classpath comes from scribe.toml unless given with --classpath.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := entries
			if len(paths) == 0 {
				var err error
				if paths, err = opts.project.ClasspathPaths(); err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("no classpath configured")
			}
			cp, err := classpath.Open(paths)
			if err != nil {
				return err
			}
			defer cp.Close()

			u, codec, err := loadUniverse(opts.project, cp, args)
			if err != nil {
				return err
			}
			report, err := classpath.Verify(codec, cp, u.Classes())
			if err != nil {
				return err
			}

			for _, f := range report.Findings {
				fmt.Println(f)
			}
			fmt.Printf("checked %d classes, %d methods, %d fields: %d findings\n",
				report.Classes, report.Methods, report.Fields, len(report.Findings))
			if len(report.Findings) > 0 {
				return fmt.Errorf("%d findings", len(report.Findings))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&entries, "classpath", nil, "class directories or jar files")

	return cmd
}
