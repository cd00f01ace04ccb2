package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List page lines matching a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.Unmount()

		sess.Search(args[0])
		matches := sess.View().WordsMatchingSearch
		if len(matches) == 0 {
			fmt.Println("no matches")
			return nil
		}

		for _, ln := range matches {
			fmt.Printf("p%-3d [%.3f,%.3f %.3fx%.3f] %s\n",
				ln.PageNumber, ln.Box.Left, ln.Box.Top, ln.Box.Width, ln.Box.Height, ln.Text)
		}
		return nil
	},
}
