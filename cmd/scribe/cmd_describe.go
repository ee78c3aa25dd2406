package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/scribe/classfile"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <descriptor>",
		Short: "Render a field or method descriptor as Java types",
		Example: `  scribe describe '(Ljava/lang/String;I[[J)V'
  scribe describe 'Ljava/util/Map$Entry;'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := describeDescriptor(args[0])
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
}

func describeDescriptor(desc string) (string, error) {
	if strings.HasPrefix(desc, "(") {
		md, err := classfile.ParseMethodDescriptor(desc)
		if err != nil {
			return "", err
		}
		return md.String(), nil
	}
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil {
		return "", err
	}
	return ft.String(), nil
}
