// cmd/main.go
package main

import (
	"fmt"
	"os"

	"go-atm/app"

	"github.com/spf13/cobra"
)

// @title           Go-ATM API
// @version         1.0
// @description     Card authentication, PIN lockout and daily-limited cash operations.

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "atm",
		Short: "ATM account core served over HTTP",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing config.yml")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			app.Run(configPath)
		},
	})

	return rootCmd
}
