package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/bukusaku/bukusaku-api/internal/presentation/http/routes"
	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/spf13/cobra"
)

var hashPassphraseCmd = &cobra.Command{
	Use:   "hash-passphrase <passphrase>",
	Short: "Print a bcrypt hash for AUTH_PASSPHRASE_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := utils.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := routes.List()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\n", ri.Method, ri.Path)
		}
		return w.Flush()
	},
}
