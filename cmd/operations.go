/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/masnyjimmy/qforms/swagger"
	"github.com/spf13/cobra"
)

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List the operations of a Swagger 2.0 document",
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")

		if res := ListOperations(input, cmd.OutOrStdout()); res != 0 {
			os.Exit(res)
		}
	},
}

func ListOperations(input string, stdout io.Writer) int {
	data, err := os.ReadFile(input)

	if err != nil {
		errorLogger.Printf("Unable to read file \"%v\": %v", input, err)
		return 1
	}

	ops, err := swagger.ListOperations(data)

	if err != nil {
		errorLogger.Print(err)
		return 3
	}

	for _, op := range ops {
		if _, err := fmt.Fprintln(stdout, op); err != nil {
			errorLogger.Printf("Unable to write output: %v", err)
			return 4
		}
	}

	return 0
}

func init() {
	rootCmd.AddCommand(operationsCmd)

	operationsCmd.Flags().StringP("input", "i", "example/swagger-event.json", "Swagger document to read")
	operationsCmd.MarkFlagFilename("input", "json", "yaml", "yml")
}
