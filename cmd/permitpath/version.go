package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/permitpath/permitpath"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of permitpath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("permitpath version %s\n", strings.TrimSpace(permitpath.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
