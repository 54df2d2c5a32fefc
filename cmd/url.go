/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/masnyjimmy/qforms/forms"
	"github.com/masnyjimmy/qforms/swagger"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url [name=value...]",
	Short: "Build the query URL a form would submit",
	Long: `Builds http://host + basePath + path followed by the given query values.

Values whose name starts with "_" or whose value is empty are left out,
like unset form fields. Names that are not query parameters of the
operation are an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		path, _ := cmd.Flags().GetString("path")
		method, _ := cmd.Flags().GetString("method")
		host, _ := cmd.Flags().GetString("host")

		if res := BuildURL(URLOptions{
			Input:  input,
			Path:   path,
			Method: method,
			Host:   host,
			Values: args,
		}, cmd.OutOrStdout()); res != 0 {
			os.Exit(res)
		}
	},
}

type URLOptions struct {
	Input  string
	Path   string
	Method string
	// Host overrides the document's host when set.
	Host   string
	Values []string
}

// BuildURL returns a process exit code like GenerateForms. Bad values exit 5.
func BuildURL(opt URLOptions, stdout io.Writer) int {
	data, err := os.ReadFile(opt.Input)

	if err != nil {
		errorLogger.Printf("Unable to read file \"%v\": %v", opt.Input, err)
		return 1
	}

	document, err := swagger.Load(data)

	if err != nil {
		errorLogger.Print(err)
		return 3
	}

	op, err := document.Operation(opt.Path, opt.Method)

	if err != nil {
		errorLogger.Printf("Unable to find operation: %v", err)
		return 3
	}

	if opt.Host != "" {
		document.Host = opt.Host
	}

	values := make([]forms.Value, 0, len(opt.Values))

	for _, pair := range opt.Values {
		v, err := forms.ParseValue(pair)
		if err != nil {
			errorLogger.Print(err)
			return 5
		}
		values = append(values, v)
	}

	url, err := forms.QueryURL(document, opt.Path, op, values)

	if err != nil {
		errorLogger.Print(err)
		return 5
	}

	if _, err := fmt.Fprintln(stdout, url); err != nil {
		errorLogger.Printf("Unable to write output: %v", err)
		return 4
	}

	return 0
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().StringP("input", "i", "example/swagger-event.json", "Swagger document to read")
	urlCmd.Flags().StringP("path", "p", "/query", "Operation path")
	urlCmd.Flags().StringP("method", "m", "get", "Operation method")
	urlCmd.Flags().String("host", "", "Service host (default: the document's host)")
	urlCmd.MarkFlagFilename("input", "json", "yaml", "yml")
}
