package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/scribe/java"
	"github.com/dhamidi/scribe/java/source"
	"github.com/spf13/cobra"
)

func newFindCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <binary-name> [member]",
		Short: "Find the declaration behind a byte-code name",
		Long: `Resolve a binary name such as com.example.Outer$Inner$2 (or its internal
form com/example/Outer$Inner$2) to the declaration in the project sources.

An optional member is either a method as name(descriptor), for example
"<init>(I)V", or a field as name or name:descriptor.`,
		Example: `  scribe find com.example.Outer$1
  scribe find com/example/Outer 'run(Ljava/lang/String;)V'
  scribe find com.example.Outer count`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := openClasspath(opts.project)
			if err != nil {
				return err
			}
			if cp != nil {
				defer cp.Close()
			}
			u, codec, err := loadUniverse(opts.project, cp, nil)
			if err != nil {
				return err
			}

			id, ok := codec.FindClass(args[0])
			if !ok {
				return fmt.Errorf("no declaration for %s", args[0])
			}
			if len(args) == 1 {
				printLocation(u, id, "class "+args[0])
				return nil
			}

			member := args[1]
			if i := strings.IndexByte(member, '('); i >= 0 {
				m, ok := codec.FindMethod(id, member[:i], member[i:])
				if !ok {
					return fmt.Errorf("no method %s in %s", member, args[0])
				}
				printLocation(u, m.Owner, fmt.Sprintf("method %s %s", m.Name, describeMethod(m)))
				return nil
			}

			name, desc, _ := strings.Cut(member, ":")
			f, ok := codec.FindField(id, name, desc)
			if !ok {
				return fmt.Errorf("no field %s in %s", member, args[0])
			}
			printLocation(u, f.Owner, fmt.Sprintf("field %s %s", f.Name, f.Type))
			return nil
		},
	}
	return cmd
}

func printLocation(u *source.Universe, id java.ClassID, what string) {
	file, span, ok := u.Location(id)
	if !ok {
		fmt.Println(what)
		return
	}
	fmt.Printf("%s:%d:%d\t%s\n", file, span.Start.Line, span.Start.Column, what)
}

func describeMethod(m java.MethodEntity) string {
	var params []string
	for _, p := range m.Parameters {
		params = append(params, p.Type.String()+" "+p.Name)
	}
	return "(" + strings.Join(params, ", ") + ")"
}
