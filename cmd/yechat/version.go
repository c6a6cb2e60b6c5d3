package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yechat/internal/version"
)

var versionDetailed bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version of yechat, with build metadata when available.`,
	Run: func(_ *cobra.Command, _ []string) {
		if versionDetailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "Show git commit, build date, Go version, and platform")
}
