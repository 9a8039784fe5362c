package main

import (
	"github.com/spf13/cobra"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/dashboard"
)

var (
	energyOut     string
	energyCountry string
	energySource  string
	energyYear    int
	energyTopN    int
)

var energyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Build electricity chart specifications",
}

var energyMixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Build a country's electricity mix stacked area chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := dashboard.New(cfg)
		if err != nil {
			return err
		}
		spec, err := svc.ElectricityMix(cmd.Context(), energyCountry)
		if err != nil {
			return err
		}
		return writeSpec(spec, energyOut)
	},
}

var energyTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Build the top producing countries bar chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := dashboard.New(cfg)
		if err != nil {
			return err
		}
		spec, err := svc.TopProducers(cmd.Context(), energySource, energyYear, energyTopN)
		if err != nil {
			return err
		}
		return writeSpec(spec, energyOut)
	},
}

var energyCountriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries present in the generation data",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := dashboard.New(cfg)
		if err != nil {
			return err
		}
		countries, err := svc.Countries(cmd.Context())
		if err != nil {
			return err
		}
		return writeSpec(countries, energyOut)
	},
}

func init() {
	energyCmd.PersistentFlags().StringVar(&energyOut, "out", "", "output file (default stdout)")

	energyMixCmd.Flags().StringVar(&energyCountry, "country", "", "country name")
	_ = energyMixCmd.MarkFlagRequired("country")

	energyTopCmd.Flags().StringVar(&energySource, "source", "", "generation source")
	energyTopCmd.Flags().IntVar(&energyYear, "year", 2023, "year")
	energyTopCmd.Flags().IntVar(&energyTopN, "n", 10, "number of countries")
	_ = energyTopCmd.MarkFlagRequired("source")

	energyCmd.AddCommand(energyMixCmd)
	energyCmd.AddCommand(energyTopCmd)
	energyCmd.AddCommand(energyCountriesCmd)
	rootCmd.AddCommand(energyCmd)
}
