package share

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSiteURL is the public storefront origin used when no override is
// configured.
const DefaultSiteURL = "https://festivo.events"

// Content is the derived title/description/url/image/hashtags bundle used
// to populate a social post or message. It has no identity and is never
// persisted; hashtag order matters on platforms that truncate.
type Content struct {
	Title       string
	Description string
	URL         string
	Image       string
	Hashtags    []string
}

// Event is the storefront record a promotion share derives from.
type Event struct {
	ID          string
	Name        string
	Description string
	StartDate   string
	Location    string
	ImageURL    string
}

// Ticket is the order record a confirmation share derives from.
type Ticket struct {
	OrderID   string
	EventID   string
	EventName string
	EventDate string
	Location  string
	Quantity  int
}

// Fixed tag sets appended after the event-derived tag. Promotion and
// ticket-confirmation shares use different sets.
var (
	promoTags  = []string{"Event", "Tickets", "Fun", "Entertainment"}
	ticketTags = []string{"Event", "Tickets", "Going", "Excited"}
)

// EventContent builds share content promoting an event. The description is
// derived from the record's own stored date, never the wall clock, so the
// same event always renders the same content. overrideText, when non-empty,
// replaces the generated description. The input is never mutated.
func EventContent(siteURL string, ev Event, overrideText string) Content {
	description := overrideText
	if description == "" {
		description = fmt.Sprintf("Join me at %s on %s at %s!", ev.Name, FormatEventDate(ev.StartDate), ev.Location)
		if ev.Description != "" {
			description += " " + ev.Description
		}
	}

	return Content{
		Title:       "🎉 " + ev.Name,
		Description: description,
		URL:         eventURL(siteURL, ev.ID),
		Image:       ev.ImageURL,
		Hashtags:    hashtags(ev.Name, promoTags),
	}
}

// TicketContent builds share content boasting about a purchased ticket.
func TicketContent(siteURL string, tk Ticket) Content {
	tickets := "my ticket"
	if tk.Quantity > 1 {
		tickets = fmt.Sprintf("%d tickets", tk.Quantity)
	}

	return Content{
		Title:       fmt.Sprintf("I'm going to %s! 🎟️", tk.EventName),
		Description: fmt.Sprintf("Just got %s to %s on %s at %s. See you there!", tickets, tk.EventName, FormatEventDate(tk.EventDate), tk.Location),
		URL:         eventURL(siteURL, tk.EventID),
		Hashtags:    hashtags(tk.EventName, ticketTags),
	}
}

// FormatEventDate renders a stored event date as a long human-readable
// date, e.g. "Saturday, March 1, 2025". Unparseable input passes through
// unchanged rather than failing the share.
func FormatEventDate(stored string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, stored); err == nil {
			return t.Format("Monday, January 2, 2006")
		}
	}
	return stored
}

// hashtags returns the event-derived tag (name with whitespace stripped)
// followed by the fixed set, preserving order.
func hashtags(eventName string, fixed []string) []string {
	tags := make([]string, 0, len(fixed)+1)
	if stripped := strings.Join(strings.Fields(eventName), ""); stripped != "" {
		tags = append(tags, stripped)
	}
	return append(tags, fixed...)
}

func eventURL(siteURL, eventID string) string {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return strings.TrimSuffix(siteURL, "/") + "/events/" + eventID
}
