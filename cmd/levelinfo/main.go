// Command levelinfo inspects level geometry stored in WAD archives.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stuarthighley/wadlevel"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "levelinfo",
		Short:         "Inspect level geometry in WAD archives",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			zl, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			wadlevel.SetLogger(zap.NewStdLog(zl))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log archive and loader progress")
	root.AddCommand(levelsCmd(), infoCmd())
	return root
}

func levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels <wad>",
		Short: "List the levels in a WAD archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wadlevel.OpenArchive(args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			for _, name := range a.LevelNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <wad> <level>",
		Short: "Show geometry counts and sector lighting for one level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wadlevel.OpenArchive(args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			level, err := wadlevel.Load(a, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d things, %d linedefs, %d sidedefs, %d vertices\n",
				len(level.Things()), len(level.Linedefs()),
				len(level.Sidedefs()), len(level.Vertices()))
			fmt.Fprintf(out, "%d segs, %d subsectors, %d nodes, %d sectors\n",
				len(level.Segs()), len(level.Subsectors()),
				len(level.Nodes()), len(level.Sectors()))

			w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "SECTOR\tFLOOR\tCEILING\tLIGHT\tMIN LIGHT")
			for i, s := range level.Sectors() {
				minLight, err := level.SectorMinLight(wadlevel.SectorId(i))
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
					i, s.FloorTexture, s.CeilingTexture, s.Light, minLight)
			}
			return w.Flush()
		},
	}
}
