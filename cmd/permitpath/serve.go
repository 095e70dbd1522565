package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/permitpath/permitpath/internal/cli"
	"github.com/permitpath/permitpath/internal/logging"
	"github.com/permitpath/permitpath/pkg/adapters/httpapi"
	"github.com/permitpath/permitpath/pkg/fees"
	"github.com/permitpath/permitpath/pkg/jurisdiction"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the PermitPath engine in server mode, exposing walkthroughs as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		treesDir, _ := cmd.Flags().GetString("trees")
		levelName, _ := cmd.Flags().GetString("log-level")
		port, _ := cmd.Flags().GetString("port")
		sessionsDir, _ := cmd.Flags().GetString("sessions-dir")
		redisURL, _ := cmd.Flags().GetString("redis-url")
		feesPath, _ := cmd.Flags().GetString("fees")
		jurPath, _ := cmd.Flags().GetString("jurisdictions")
		watch, _ := cmd.Flags().GetBool("watch")

		logger := logging.New(logging.ParseLevel(levelName))

		app, err := cli.NewApp(cli.RunOptions{
			TreesDir:    treesDir,
			SessionsDir: sessionsDir,
			RedisURL:    redisURL,
		}, logger)
		if err != nil {
			fmt.Printf("Error initializing permitpath: %v\n", err)
			os.Exit(1)
		}

		serverOpts := []httpapi.ServerOption{httpapi.WithLogger(logger)}
		if feesPath != "" {
			schedule, err := fees.Load(feesPath)
			if err != nil {
				fmt.Printf("Error loading fee schedule: %v\n", err)
				os.Exit(1)
			}
			serverOpts = append(serverOpts, httpapi.WithFeeSchedule(schedule))
		}
		if jurPath != "" {
			directory, err := jurisdiction.Load(jurPath)
			if err != nil {
				fmt.Printf("Error loading jurisdiction directory: %v\n", err)
				os.Exit(1)
			}
			serverOpts = append(serverOpts, httpapi.WithDirectory(directory))
		}

		handler := httpapi.NewHandler(app.Sessions(), app.Source(), serverOpts...)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		watchCtx, cancelWatch := context.WithCancel(context.Background())
		defer cancelWatch()
		if watch {
			reloads, err := app.Watch(watchCtx)
			if err != nil {
				fmt.Printf("Error starting tree watcher: %v\n", err)
				os.Exit(1)
			}
			go func() {
				for projectType := range reloads {
					logger.Info("question tree reloaded", "project_type", projectType)
				}
			}()
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting PermitPath server on %s\n", srv.Addr)
			fmt.Printf("Serving question trees from: %s\n", treesDir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("PermitPath server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("sessions-dir", "", "Persist sessions as JSON files in this directory")
	serveCmd.Flags().String("redis-url", "", "Persist sessions in Redis (e.g. redis://localhost:6379/0)")
	serveCmd.Flags().String("fees", "", "Fee schedule YAML to enable /fees/estimate")
	serveCmd.Flags().String("jurisdictions", "", "Jurisdiction directory YAML to enable /jurisdictions")
	serveCmd.Flags().Bool("watch", false, "Reload question trees when their files change")
}
