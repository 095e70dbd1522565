package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permitpath/permitpath/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [project-type]",
	Short: "Run an interactive permit walkthrough",
	Long: `Starts an interactive walkthrough for the given project type,
asking one question at a time and producing a summary of your answers.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		treesDir, _ := cmd.Flags().GetString("trees")
		projectType, _ := cmd.Flags().GetString("project")
		if !cmd.Flags().Changed("project") && len(args) > 0 {
			projectType = args[0]
		}

		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		sessionsDir, _ := cmd.Flags().GetString("sessions-dir")
		redisURL, _ := cmd.Flags().GetString("redis-url")
		feesPath, _ := cmd.Flags().GetString("fees")
		jur, _ := cmd.Flags().GetString("jurisdiction")
		jsonMode, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")

		opts := cli.RunOptions{
			TreesDir:     treesDir,
			ProjectType:  projectType,
			SessionID:    sessionID,
			Fresh:        fresh,
			SessionsDir:  sessionsDir,
			RedisURL:     redisURL,
			FeesPath:     feesPath,
			Jurisdiction: jur,
			JSON:         jsonMode,
			Debug:        debug,
		}

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("project", "", "Project type to walk through (e.g. fence, deck)")
	runCmd.Flags().String("session", "", "Session ID to resume or create")
	runCmd.Flags().Bool("fresh", false, "Discard any saved state for the session ID")
	runCmd.Flags().String("sessions-dir", "", "Persist sessions as JSON files in this directory")
	runCmd.Flags().String("redis-url", "", "Persist sessions in Redis (e.g. redis://localhost:6379/0)")
	runCmd.Flags().String("fees", "", "Fee schedule YAML for a final fee estimate")
	runCmd.Flags().String("jurisdiction", "", "Jurisdiction ID for the fee estimate")
	runCmd.Flags().Bool("json", false, "Machine-readable prompts and answers (JSON lines)")
	runCmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
}
