package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/scribe/format"
	"github.com/dhamidi/scribe/java"
	"github.com/dhamidi/scribe/java/source"
	"github.com/spf13/cobra"
)

func newNameCmd(opts *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "name [file.java...]",
		Short: "Print the byte-code names and descriptors of declarations",
		Long: `Print every class, method and field declared in the given files with
its binary name and descriptor. Without arguments all source files of the
project are used.

Declarations without a byte-code identity are printed with the reason.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, ok := format.New(outputFormat, os.Stdout)
			if !ok {
				return fmt.Errorf("unknown format: %s (expected line or json)", outputFormat)
			}

			cp, err := openClasspath(opts.project)
			if err != nil {
				return err
			}
			if cp != nil {
				defer cp.Close()
			}
			u, codec, err := loadUniverse(opts.project, cp, args)
			if err != nil {
				return err
			}

			var records []format.Record
			for _, file := range u.Files() {
				records = append(records, declarationRecords(codec, file, u.Declarations(file))...)
			}
			return enc.Encode(records)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}

func declarationRecords(codec *java.Codec, file string, decls []source.Declaration) []format.Record {
	records := make([]format.Record, 0, len(decls))
	for _, d := range decls {
		r := format.Record{
			File:   file,
			Line:   d.Span.Start.Line,
			Column: d.Span.Start.Column,
			Kind:   kindName(d.Kind),
		}
		name, err := declarationName(codec, d)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Name = name
		}
		records = append(records, r)
	}
	return records
}

// declarationName formats a declaration as "Outer$1", "Outer.run()V" or
// "Outer.count:I", using binary names.
func declarationName(codec *java.Codec, d source.Declaration) (string, error) {
	switch d.Kind {
	case source.DeclarationMethod:
		owner, err := codec.BinaryName(d.Method.Owner)
		if err != nil {
			return "", err
		}
		desc, err := codec.MethodDescriptor(d.Method)
		if err != nil {
			return "", err
		}
		return owner + "." + java.InternalMethodName(d.Method) + desc, nil
	case source.DeclarationField:
		owner, err := codec.BinaryName(d.Field.Owner)
		if err != nil {
			return "", err
		}
		desc, err := codec.FieldDescriptor(d.Field)
		if err != nil {
			return "", err
		}
		return owner + "." + d.Field.Name + ":" + desc, nil
	}
	return codec.BinaryName(d.Class)
}

func kindName(k source.DeclarationKind) string {
	switch k {
	case source.DeclarationClass:
		return "class"
	case source.DeclarationMethod:
		return "method"
	case source.DeclarationField:
		return "field"
	}
	return "unknown"
}
