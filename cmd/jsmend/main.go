package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/jsmend/jsmend/pkg/api"
)

// jsmend rewrites LiveView client bootstrap files from the command line.
// Input comes from a file argument or stdin; output goes to stdout unless
// -w rewrites the file in place.

var errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()

func main() {
	root := &cobra.Command{
		Use:           "jsmend",
		Short:         "AST-driven edits for LiveView client bootstrap files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		statsCmd(),
		estreeCmd(),
		fmtCmd(),
		importsCmd(),
		hooksCmd(),
		extendVarCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
		os.Exit(1)
	}
}

// The optional trailing argument names the input file; without it the
// source is read from stdin.
func readInput(args []string) (contents string, path string, err error) {
	if len(args) > 0 {
		path = args[len(args)-1]
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", err
		}
		return string(data), path, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", err
	}
	return string(data), "", nil
}

func writeOutput(path string, inPlace bool, out string) error {
	if inPlace && path != "" {
		return os.WriteFile(path, []byte(out), 0644)
	}
	_, err := os.Stdout.WriteString(out)
	return err
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Count functions, classes, imports, and friends",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _, err := readInput(args)
			if err != nil {
				return err
			}
			stats, err := api.Statistics(source)
			if err != nil {
				return err
			}
			fmt.Printf("functions: %d\nclasses:   %d\ndebuggers: %d\nimports:   %d\ntrys:      %d\nthrows:    %d\n",
				stats.Functions, stats.Classes, stats.Debuggers, stats.Imports, stats.Trys, stats.Throws)
			return nil
		},
	}
}

func estreeCmd() *cobra.Command {
	var colorize bool

	cmd := &cobra.Command{
		Use:   "estree [file]",
		Short: "Dump the parse as ESTree-shaped JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _, err := readInput(args)
			if err != nil {
				return err
			}
			dump, err := api.EstreeDump(source)
			if err != nil {
				return err
			}
			if colorize {
				pretty, err := prettyjson.Format([]byte(dump))
				if err != nil {
					return err
				}
				dump = string(pretty)
			}
			fmt.Println(dump)
			return nil
		},
	}

	cmd.Flags().BoolVar(&colorize, "color", false, "colorize the JSON output")
	return cmd
}

func fmtCmd() *cobra.Command {
	var check bool
	var css bool
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat JavaScript (or CSS with --css)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, path, err := readInput(args)
			if err != nil {
				return err
			}

			var formatted string
			if css {
				formatted, err = api.FormatCSS(source)
			} else {
				formatted, err = api.FormatJS(source)
			}
			if err != nil {
				return err
			}

			if check {
				var ok bool
				if css {
					ok, err = api.IsCSSFormatted(source)
				} else {
					ok, err = api.IsJSFormatted(source)
				}
				if err != nil {
					return err
				}
				if !ok {
					dmp := diffmatchpatch.New()
					diffs := dmp.DiffMain(source, formatted, false)
					fmt.Fprintln(os.Stderr, dmp.DiffPrettyText(diffs))
					return fmt.Errorf("not formatted")
				}
				return nil
			}

			return writeOutput(path, inPlace, formatted)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "exit 1 if the input is not formatted")
	cmd.Flags().BoolVar(&css, "css", false, "treat the input as CSS")
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input file in place")
	return cmd
}

func importsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Add, remove, or test import declarations",
	}

	var fragmentFile string
	var inPlace bool

	add := &cobra.Command{
		Use:   "add [file]",
		Short: "Merge the imports of a fragment into the file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, path, err := readInput(args)
			if err != nil {
				return err
			}
			fragment, err := os.ReadFile(fragmentFile)
			if err != nil {
				return err
			}
			out, err := api.InsertImport(source, string(fragment))
			if err != nil {
				return err
			}
			return writeOutput(path, inPlace, out)
		},
	}
	add.Flags().StringVarP(&fragmentFile, "fragment", "f", "", "file with the import declarations to merge")
	add.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input file in place")
	_ = add.MarkFlagRequired("fragment")

	var removeInPlace bool
	remove := &cobra.Command{
		Use:   "remove PATH... [file]",
		Short: "Drop imports of the given module paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, fileArgs := splitTrailingFile(args)
			source, path, err := readInput(fileArgs)
			if err != nil {
				return err
			}
			out, err := api.RemoveImport(source, names)
			if err != nil {
				return err
			}
			return writeOutput(path, removeInPlace, out)
		},
	}
	remove.Flags().BoolVarP(&removeInPlace, "write", "w", false, "rewrite the input file in place")

	has := &cobra.Command{
		Use:   "has MODULE [file]",
		Short: "Exit 0 when the module path is imported",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _, err := readInput(args[1:])
			if err != nil {
				return err
			}
			imported, err := api.IsModuleImported(source, args[0])
			if err != nil {
				return err
			}
			if !imported {
				return fmt.Errorf("%q is not imported", args[0])
			}
			fmt.Println("imported")
			return nil
		},
	}

	cmd.AddCommand(add, remove, has)
	return cmd
}

func hooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Edit the hooks object of the live-socket declaration",
	}

	var variable string
	var constructor string
	var inPlace bool

	locator := func() api.LiveSocketOptions {
		return api.LiveSocketOptions{Variable: variable, Constructor: constructor}
	}

	add := &cobra.Command{
		Use:   "add NAME... [file]",
		Short: "Add shorthand members or \"...X\" spreads to hooks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, fileArgs := splitTrailingFile(args)
			source, path, err := readInput(fileArgs)
			if err != nil {
				return err
			}
			out, err := api.ExtendHookObjectWith(source, locator(), names)
			if err != nil {
				return err
			}
			return writeOutput(path, inPlace, out)
		},
	}

	remove := &cobra.Command{
		Use:   "remove NAME... [file]",
		Short: "Remove shorthand members or \"...X\" spreads from hooks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, fileArgs := splitTrailingFile(args)
			source, path, err := readInput(fileArgs)
			if err != nil {
				return err
			}
			out, err := api.RemoveHookMembersWith(source, locator(), names)
			if err != nil {
				return err
			}
			return writeOutput(path, inPlace, out)
		},
	}

	find := &cobra.Command{
		Use:   "find [file]",
		Short: "Exit 0 when a well-formed live-socket declaration exists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _, err := readInput(args)
			if err != nil {
				return err
			}
			if _, err := api.FindLiveSocketWith(source, locator()); err != nil {
				return err
			}
			fmt.Println("found")
			return nil
		},
	}

	for _, sub := range []*cobra.Command{add, remove, find} {
		sub.Flags().StringVar(&variable, "var", "", "binding name to match (default liveSocket)")
		sub.Flags().StringVar(&constructor, "new", "", "constructor name to match (default LiveSocket)")
	}
	add.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input file in place")
	remove.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input file in place")

	cmd.AddCommand(add, remove, find)
	return cmd
}

func extendVarCmd() *cobra.Command {
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "extend-var VAR NAME... [file]",
		Short: "Add shorthand members to the object bound to a variable",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			varName := args[0]
			names, fileArgs := splitTrailingFile(args[1:])
			source, path, err := readInput(fileArgs)
			if err != nil {
				return err
			}
			out, err := api.ExtendVarObjectByNames(source, varName, names)
			if err != nil {
				return err
			}
			return writeOutput(path, inPlace, out)
		},
	}

	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the input file in place")
	return cmd
}

// The last argument is an input file when it names one on disk; everything
// before it is operation names.
func splitTrailingFile(args []string) (names []string, fileArgs []string) {
	if len(args) > 1 {
		last := args[len(args)-1]
		if info, err := os.Stat(last); err == nil && !info.IsDir() {
			return args[:len(args)-1], []string{last}
		}
	}
	return args, nil
}
