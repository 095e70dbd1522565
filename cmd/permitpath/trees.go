package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/permitpath/permitpath/pkg/registry"
)

var treesCmd = &cobra.Command{
	Use:   "trees",
	Short: "Inspect the question tree directory",
}

var treesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the project types available in the trees directory",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("trees")

		reg := registry.New()
		if err := reg.LoadDir(dir); err != nil {
			fmt.Printf("Error loading trees: %v\n", err)
			os.Exit(1)
		}
		types, err := reg.List()
		if err != nil {
			fmt.Printf("Error listing trees: %v\n", err)
			os.Exit(1)
		}
		for _, projectType := range types {
			tree, err := reg.Get(projectType)
			if err != nil {
				continue
			}
			fmt.Printf("%-20s %s (%d questions)\n", projectType, tree.Name, len(tree.Questions))
		}
	},
}

var treesValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate question tree YAML files",
	Long: `Validates each given file (or every YAML file in the trees directory)
against the question tree rules: unique IDs, options on select questions,
compilable patterns, and conditions that reference earlier questions.`,
	Run: func(cmd *cobra.Command, args []string) {
		files := args
		if len(files) == 0 {
			dir, _ := cmd.Flags().GetString("trees")
			for _, pattern := range []string{"*.yaml", "*.yml"} {
				matches, _ := filepath.Glob(filepath.Join(dir, pattern))
				files = append(files, matches...)
			}
		}
		if len(files) == 0 {
			fmt.Println("No tree files found.")
			os.Exit(1)
		}

		failed := false
		for _, path := range files {
			reg := registry.New()
			if err := reg.LoadFile(path); err != nil {
				fmt.Printf("✗ %s: %v\n", path, err)
				failed = true
				continue
			}
			fmt.Printf("✓ %s\n", path)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(treesCmd)
	treesCmd.AddCommand(treesListCmd)
	treesCmd.AddCommand(treesValidateCmd)
}
