package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgc202/go-paapi/version"
)

func newVersionCmd(o *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No settings or credentials are needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()
			switch o.output {
			case "json":
				s, err := info.ToJSONIndent()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "yaml":
				s, err := info.ToYAML()
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
			case "short":
				fmt.Fprintln(out, info.ShortString())
			case "text", "":
				fmt.Fprintln(out, info.Text())
			default:
				return fmt.Errorf("unknown output format %q", o.output)
			}
			return nil
		},
	}
	return cmd
}
