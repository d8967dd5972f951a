package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/flightdeck/internal/booking"
)

func parseTabIndex(flag string, v int) (booking.Tab, error) {
	t := booking.Tab(v)
	if !t.Valid() {
		return 0, fmt.Errorf("--%s must be between 0 and %d, got %d", flag, booking.TabCount-1, v)
	}
	return t, nil
}

// TabsCmd returns the `flightdeck tabs` command.
func TabsCmd() *cobra.Command {
	var (
		from   int
		to     int
		narrow bool
	)
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List tabs or resolve a swipe between two tabs",
		Long: "Without --to, list the tabs the strip shows. With --to, print where a " +
			"swipe from --from toward --to lands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("to") {
				for _, t := range booking.VisibleTabs(narrow) {
					note := ""
					if t.Secondary() {
						note = "  (collapsed on narrow)"
					}
					fmt.Fprintf(out, "  %d  %s%s\n", int(t), t, note)
				}
				return nil
			}

			current, err := parseTabIndex("from", from)
			if err != nil {
				return err
			}
			target, err := parseTabIndex("to", to)
			if err != nil {
				return err
			}
			c := booking.NewTabController()
			c.SelectTab(current)
			c.NavigateTo(target, narrow)
			fmt.Fprintf(out, "%d (%s) -> %d (%s)\n", int(current), current, int(c.Index()), c.Index())
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "starting tab index")
	cmd.Flags().IntVar(&to, "to", 0, "target tab index")
	cmd.Flags().BoolVar(&narrow, "narrow", false, "use narrow viewport rules")
	return cmd
}
