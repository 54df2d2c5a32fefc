/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"

	"github.com/masnyjimmy/qforms/portarg"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qforms",
	Short: "Serve static files and turn Swagger operations into form tags",
	Long: `qforms bundles small tools for Swagger-driven query forms:

  serve        serve the working directory over HTTP
  forms        print one template input tag per query parameter of an operation
  url          build the query URL a form for an operation submits
  operations   list the operations of a Swagger 2.0 document`,
}

var errorLogger *log.Logger = log.New(os.Stderr, "Error ", log.Ltime)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// envPort reads a port override for a flag default. Values that are not a
// valid port are ignored.
func envPort(name string, def int) int {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return def
	}

	res := portarg.Parse([]string{raw})
	if res.Status == portarg.Absent {
		return def
	}
	if res.Status != portarg.Valid {
		log.Printf("Ignoring %v=%q: %v", name, raw, res.Err)
		return def
	}

	return res.Port
}
