package cli

import (
	"fmt"

	"carousel-builder/internal/carousel"

	"github.com/spf13/cobra"
)

var twilioNumbered bool

func init() {
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(twilioCmd)
	rootCmd.AddCommand(jaiminhoCmd)
	rootCmd.AddCommand(importCmd)

	twilioCmd.Flags().BoolVar(&twilioNumbered, "numbered", false, "replace named placeholders with {{1}}, {{2}}, ...")
}

var varsCmd = &cobra.Command{
	Use:   "vars <input.json|->",
	Short: "List template variables",
	Long:  "Print the distinct {{name}} placeholders of the form input, one per line, in first-seen order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readTemplateInput(cmd, args[0])
		if err != nil {
			return err
		}
		for _, name := range carousel.Collect(in).Variables {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var twilioCmd = &cobra.Command{
	Use:   "twilio <input.json|->",
	Short: "Render the Twilio Content API document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readTemplateInput(cmd, args[0])
		if err != nil {
			return err
		}
		return writeDocument(cmd, carousel.Twilio(carousel.Collect(in), twilioNumbered))
	},
}

var jaiminhoCmd = &cobra.Command{
	Use:   "jaiminho <input.json|->",
	Short: "Render the Jaiminho locale-content document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := readTemplateInput(cmd, args[0])
		if err != nil {
			return err
		}
		return writeDocument(cmd, carousel.Jaiminho(carousel.Collect(in)))
	},
}

var importCmd = &cobra.Command{
	Use:   "import <twilio.json|->",
	Short: "Read a Twilio document back into form input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}
		in, err := carousel.ParseTwilioInput(data)
		if err != nil {
			return err
		}
		return writeDocument(cmd, in)
	},
}
