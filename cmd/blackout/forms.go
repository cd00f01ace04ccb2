package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/blackout/forms"
)

var formsOut string

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Emit the forms CSV for a page",
	Long:  `Forms writes the page's extracted key-value pairs as CSV, the same artifact a review UI serves through a temporary download URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Unmount()

		out := os.Stdout
		if formsOut != "" {
			f, err := os.Create(formsOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", formsOut, err)
			}
			defer f.Close()
			out = f
		}

		return forms.WriteCSV(out, sess.View().PageLevel.KeyValuePairs)
	},
}

func init() {
	formsCmd.Flags().StringVar(&formsOut, "out", "", "Write CSV here instead of stdout")
}
