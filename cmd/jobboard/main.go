// Package main provides the entry point for the Job Board HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job Board HTTP API Server",
	Long:  "Job Board exposes REST endpoints for job seekers, employers, and admins: browsing and applying to jobs, posting and reviewing applications, and moderating the platform.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
