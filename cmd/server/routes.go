package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jrsteele09/go-care-portal/routing"
	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	var localeFlag string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Long:  `Print every page of the route table, sorted by key, with its path in each locale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := routing.Load()
			if err != nil {
				return err
			}

			locales := routing.Locales()
			if localeFlag != "" {
				locale, err := routing.ParseLocale(localeFlag)
				if err != nil {
					return err
				}
				locales = []routing.Locale{locale}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprint(w, "KEY\tAPP\tACCESS")
			for _, locale := range locales {
				fmt.Fprintf(w, "\t%s", locale)
			}
			fmt.Fprintln(w)

			for _, key := range table.Keys() {
				route, err := table.Route(key)
				if err != nil {
					return err
				}
				app := route.App.String()
				if app == "" {
					app = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s", route.Key, app, access(route))
				for _, locale := range locales {
					fmt.Fprintf(w, "\t%s", route.Paths[locale])
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&localeFlag, "locale", "l", "", "Only print paths of this locale (es, en)")

	return cmd
}

func access(route *routing.Route) string {
	switch {
	case route.App == "":
		return "open"
	case route.Public:
		return "public"
	default:
		return "protected"
	}
}
