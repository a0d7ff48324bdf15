package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective assembly settings",
	Long: `Print the effective assembly settings as JSON: the defaults merged
with the local settings.yaml, environment variables, and command line flags`,
	Run: func(cmd *cobra.Command, args []string) {
		contents, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(string(contents))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
