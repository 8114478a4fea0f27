package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the flight tracker CLI.
var rootCmd = &cobra.Command{
	Use:   "pixoo-tracker",
	Short: "Track the nearest aircraft on a Pixoo64 LED display",
	Long: `pixoo-tracker polls a flight data feed for the aircraft closest to a
configured point and renders a looping flight-strip animation (airline
logo, route, flight stats) on a Divoom Pixoo64 LED matrix.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
