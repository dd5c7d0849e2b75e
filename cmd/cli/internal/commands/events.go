package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/festivo/festivo/internal/api"
	"github.com/festivo/festivo/internal/share"
)

type EventsCmd struct {
	Limit  int    `help:"Maximum number of events" default:"20"`
	Status string `help:"Event status to filter by (published, draft, cancelled)" default:""`
	Watch  bool   `help:"Watch for changes (refresh every 30 seconds)" default:"false"`
}

func (e *EventsCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	if e.Watch {
		return e.watchEvents(ctx, rt)
	}

	return e.listEvents(ctx, rt)
}

func (e *EventsCmd) listEvents(ctx context.Context, rt *runtime) error {
	events, err := rt.client.ListEvents(ctx, e.Limit, e.Status)
	if err != nil {
		return err
	}

	e.printEvents(events)
	return nil
}

func (e *EventsCmd) watchEvents(ctx context.Context, rt *runtime) error {
	fmt.Println("Watching events (press Ctrl+C to stop)...")
	fmt.Println()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	if err := e.listEvents(ctx, rt); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fmt.Print("\033[2J\033[H") // Clear screen and move cursor to top
			fmt.Printf("Events (updated at %s)\n", time.Now().Format("15:04:05"))
			fmt.Println()

			if err := e.listEvents(ctx, rt); err != nil {
				fmt.Printf("Error updating event list: %v\n", err)
			}
		}
	}
}

func (e *EventsCmd) printEvents(events []api.Event) {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tLOCATION\tSTATUS")

	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ev.ID,
			truncate(ev.Name, 30),
			share.FormatEventDate(ev.StartDate),
			truncate(ev.Location, 25),
			ev.Status)
	}

	w.Flush()

	fmt.Printf("\nTotal events: %d\n", len(events))
}
