package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLocationsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List charging locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}
			locations, err := client.Locations(cmd.Context())
			if err != nil {
				return rt.report(cmd, err, true)
			}

			p := newPrinter(cmd)
			if len(locations) == 0 {
				p.info("No locations yet.")
				return nil
			}
			rows := make([][]string, 0, len(locations))
			for _, l := range locations {
				rows = append(rows, []string{strconv.FormatInt(l.ID, 10), l.Name, l.City, l.Address})
			}
			p.table([]string{"ID", "Name", "City", "Address"}, rows, nil)
			return nil
		},
	}
}

func newStationsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "stations <locationId>",
		Short: "List the stations of a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locationID, err := parseID("locationId", args[0])
			if err != nil {
				return err
			}
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}
			stations, err := client.Stations(cmd.Context(), locationID)
			if err != nil {
				return rt.report(cmd, err, true)
			}

			p := newPrinter(cmd)
			if len(stations) == 0 {
				p.info("No stations at location %d.", locationID)
				return nil
			}
			rows := make([][]string, 0, len(stations))
			for _, s := range stations {
				rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Name, s.ChargerType, s.PowerOutput})
			}
			p.table([]string{"ID", "Name", "Charger", "Power"}, rows, nil)
			return nil
		},
	}
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}
