package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelsim/expertpanel/internal/model/expert"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List available expert domains and their experts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := expert.NewBuiltinStore()
		all := store.All()
		for _, domain := range store.Domains() {
			fmt.Println(domain)
			for _, t := range all[domain] {
				fmt.Printf("  %-22s %s: %s\n", t.Key, t.Name, t.Expertise)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}
