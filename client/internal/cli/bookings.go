package cli

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"evcharge/client/internal/api"
	"evcharge/client/internal/models"
)

// timeSlots returns the bookable hourly slots of a day, "00:00" to "23:00".
func timeSlots() []string {
	slots := make([]string, 24)
	for h := range slots {
		slots[h] = fmt.Sprintf("%02d:00", h)
	}
	return slots
}

// freeSlots returns the slots of timeSlots not present in booked.
func freeSlots(booked []models.BookedSlotDTO) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.TimeSlot] = true
	}
	var free []string
	for _, slot := range timeSlots() {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free
}

func newSlotsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "slots <stationId> <date>",
		Short: "Show which time slots of a station are booked on a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stationID, err := parseID("stationId", args[0])
			if err != nil {
				return err
			}
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}
			booked, err := client.BookedSlots(cmd.Context(), stationID, args[1])
			if err != nil {
				return rt.report(cmd, err, true)
			}

			taken := make(map[string]bool, len(booked))
			for _, b := range booked {
				taken[b.TimeSlot] = true
			}
			slots := timeSlots()
			rows := make([][]string, 0, len(slots))
			for _, slot := range slots {
				status := "free"
				if taken[slot] {
					status = "booked"
				}
				rows = append(rows, []string{slot, status})
			}

			p := newPrinter(cmd)
			p.section(fmt.Sprintf("Station %d on %s", stationID, args[1]))
			p.table([]string{"Slot", "Status"}, rows, func(row, col int) *lipgloss.Style {
				if col != 1 || row < 0 || row >= len(slots) {
					return nil
				}
				if taken[slots[row]] {
					return &errorStyle
				}
				return &successStyle
			})
			p.muted("%d of %d slots free", len(slots)-len(taken), len(slots))
			return nil
		},
	}
}

func newBookCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "book <stationId> <date> <timeSlot>",
		Short: "Book a time slot, e.g. evctl book 1 2025-06-01 10:00",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			stationID, err := parseID("stationId", args[0])
			if err != nil {
				return err
			}
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}
			return rt.book(cmd, client, stationID, args[1], args[2])
		},
	}
}

func (rt *runtime) book(cmd *cobra.Command, client *api.Client, stationID int64, date, slot string) error {
	booking, err := client.Book(cmd.Context(), stationID, date, slot)
	if err != nil {
		return rt.report(cmd, err, false)
	}
	newPrinter(cmd).success("Booked station %d on %s at %s (booking #%d).",
		booking.StationID, booking.Date, booking.TimeSlot, booking.ID)
	return nil
}

func newBookingsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List your bookings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}
			bookings, err := client.MyBookings(cmd.Context())
			if err != nil {
				return rt.report(cmd, err, true)
			}

			p := newPrinter(cmd)
			if len(bookings) == 0 {
				p.info("You have no bookings yet.")
				return nil
			}
			rows := make([][]string, 0, len(bookings))
			for _, b := range bookings {
				rows = append(rows, []string{
					strconv.FormatInt(b.ID, 10),
					b.Date,
					b.TimeSlot,
					b.StationName,
					b.ChargerType,
					b.PowerOutput,
					b.LocationName,
					b.City,
				})
			}
			p.table([]string{"ID", "Date", "Slot", "Station", "Charger", "Power", "Location", "City"}, rows, nil)
			return nil
		},
	}
}

func newWatchCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <stationId> <date>",
		Short: "Follow bookings of a station and date as they happen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stationID, err := parseID("stationId", args[0])
			if err != nil {
				return err
			}
			client, _, err := rt.authorized(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := newPrinter(cmd)
			p.info("Watching station %d on %s. Press Ctrl+C to stop.", stationID, args[1])
			err = client.WatchSlots(ctx, stationID, args[1], func(event models.SlotEventDTO) {
				p.info("%s on %s was just booked.", event.TimeSlot, event.Date)
			})
			if err != nil {
				return rt.report(cmd, err, true)
			}
			return nil
		},
	}
}
