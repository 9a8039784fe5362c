package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/dashboard"
)

var electionOut string

var electionCmd = &cobra.Command{
	Use:   "election",
	Short: "Build election chart specifications",
}

var electionMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Build the county margin choropleth",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := dashboard.New(cfg)
		if err != nil {
			return err
		}
		spec, err := svc.CountyMarginMap(cmd.Context())
		if err != nil {
			return err
		}
		return writeSpec(spec, electionOut)
	},
}

var electionShiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Build the two-cycle margin scatter",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := dashboard.New(cfg)
		if err != nil {
			return err
		}
		spec, err := svc.MarginShift(cmd.Context())
		if err != nil {
			return err
		}
		return writeSpec(spec, electionOut)
	},
}

// writeSpec writes a chart specification as indented JSON to path, or to
// stdout when path is empty.
func writeSpec(spec any, path string) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode spec")
	}
	data = append(data, '\n')

	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	zap.L().Info("spec written", zap.String("path", path))
	return nil
}

func init() {
	electionCmd.PersistentFlags().StringVar(&electionOut, "out", "", "output file (default stdout)")
	electionCmd.AddCommand(electionMapCmd)
	electionCmd.AddCommand(electionShiftCmd)
	rootCmd.AddCommand(electionCmd)
}
