/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/masnyjimmy/qforms/forms"
	"github.com/masnyjimmy/qforms/swagger"
	"github.com/masnyjimmy/qforms/validation"
	"github.com/spf13/cobra"
)

// formsCmd represents the forms command
var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Print an input tag for each query parameter of an operation",
	Long: `Reads a Swagger 2.0 document (JSON or YAML), looks up one operation and
prints one template tag per query parameter, in declaration order:

  <date-input name="starttime"></date-input>
  <text-input name="minmag"></text-input>
  <choice-input name="magtype"></choice-input>
  <boolean-input name="includearrivals"></boolean-input>`,
	Run: func(cmd *cobra.Command, args []string) {

		input, _ := cmd.Flags().GetString("input")
		path, _ := cmd.Flags().GetString("path")
		method, _ := cmd.Flags().GetString("method")
		output, _ := cmd.Flags().GetString("output")
		validate, _ := cmd.Flags().GetBool("validate")
		labels, _ := cmd.Flags().GetStringToString("label")

		if res := GenerateForms(FormsOptions{
			Input:    input,
			Path:     path,
			Method:   method,
			Output:   output,
			Validate: validate,
			Labels:   labels,
		}, cmd.OutOrStdout()); res != 0 {
			os.Exit(res)
		}
	},
}

type FormsOptions struct {
	Input    string
	Path     string
	Method   string
	Output   string
	Validate bool
	Labels   map[string]string
}

// GenerateForms returns a process exit code: 1 read, 2 validation,
// 3 parse or lookup, 4 write.
func GenerateForms(opt FormsOptions, stdout io.Writer) int {

	log.Printf("Reading %v", opt.Input)

	data, err := os.ReadFile(opt.Input)

	if err != nil {
		errorLogger.Printf("Unable to read file \"%v\": %v", opt.Input, err)
		return 1
	}

	if opt.Validate {
		log.Print("Validating document..")

		if err := validation.ValidateYAML(data); err != nil {
			errorLogger.Printf("Validation failed: %v", err)
			return 2
		}
	}

	log.Printf("Parsing document..")

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

	var buf bytes.Buffer

	if err := forms.Write(&buf, forms.LabeledTags(op, opt.Labels)); err != nil {
		errorLogger.Printf("Unable to render tags: %v", err)
		return 4
	}

	if opt.Output == "" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			errorLogger.Printf("Unable to write output: %v", err)
			return 4
		}
		return 0
	}

	log.Printf("Writing to %v", opt.Output)

	if err := os.WriteFile(opt.Output, buf.Bytes(), 0644); err != nil {
		errorLogger.Printf("Unable to write file %v: %v", opt.Output, err)
		return 4
	}

	log.Printf("Finished succesfully :)")
	return 0
}

func init() {
	rootCmd.AddCommand(formsCmd)

	formsCmd.Flags().StringP("input", "i", "example/swagger-event.json", "Swagger document to read")
	formsCmd.Flags().StringP("path", "p", "/query", "Operation path")
	formsCmd.Flags().StringP("method", "m", "get", "Operation method")
	formsCmd.Flags().StringP("output", "o", "", "Output filepath (default stdout)")
	formsCmd.Flags().Bool("validate", false, "Check the document shape before converting")
	formsCmd.Flags().StringToString("label", nil, "Label for a parameter, e.g. --label starttime=\"Start Time\"")
	formsCmd.MarkFlagFilename("input", "json", "yaml", "yml")
}
