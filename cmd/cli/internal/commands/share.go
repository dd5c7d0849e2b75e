package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/festivo/festivo/internal/api"
	"github.com/festivo/festivo/internal/clipboard"
	"github.com/festivo/festivo/internal/share"
)

type ShareCmd struct {
	Event    string `arg:"" help:"Event id or name"`
	Platform string `help:"Target platform (facebook, instagram, whatsapp, twitter, linkedin)" default:"twitter"`
	Text     string `help:"Override the generated description"`

	Ticket   bool `help:"Share as a ticket confirmation instead of a promotion"`
	Quantity int  `help:"Ticket quantity for a ticket share" default:"1"`

	Copy   bool `help:"Copy the share text to the clipboard"`
	Native bool `help:"Deliver through the host share sheet when available"`
	Open   bool `help:"Open the share URL in the browser"`
	QR     int  `help:"Print a QR image URL of the given pixel size" default:"0"`

	SiteURL string `help:"Public storefront origin for event links" env:"FESTIVO_SITE_URL" default:""`
}

func (s *ShareCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	platform, err := share.ParsePlatform(s.Platform)
	if err != nil {
		return err
	}

	ev, err := s.findEvent(ctx, rt)
	if err != nil {
		return err
	}

	content := s.buildContent(ev)

	text, err := share.RenderText(content, platform)
	if err != nil {
		return err
	}
	shareURL, err := share.ShareURL(content, platform)
	if err != nil {
		return err
	}

	fmt.Printf("Share text for %s:\n\n%s\n\n", platform, text)
	fmt.Printf("Share URL: %s\n", shareURL)

	if s.QR > 0 {
		fmt.Printf("QR image:  %s\n", share.QRImageURL(s.QR, content.URL))
	}

	// Instagram has no URL-based share: the text travels via the clipboard
	if s.Copy || platform == share.Instagram {
		if clipboard.New().Copy(ctx, text) {
			fmt.Println("Copied share text to clipboard.")
		} else {
			fmt.Println("Could not reach a clipboard; paste the text above manually.")
		}
	}

	if s.Native {
		native := share.NewNative(share.NewCommandSharer(""), nil)
		if native.Share(ctx, content) {
			fmt.Println("Shared via the host share sheet.")
			return nil
		}
		fmt.Println("Native share not delivered; use the share URL above.")
	}

	if s.Open {
		if !openBrowser(shareURL) {
			fmt.Println("Could not open a browser; use the share URL above.")
		}
	}

	return nil
}

// findEvent resolves the positional argument against the listing, matching
// id first, then name.
func (s *ShareCmd) findEvent(ctx context.Context, rt *runtime) (api.Event, error) {
	events, err := rt.client.ListEvents(ctx, 0, "")
	if err != nil {
		return api.Event{}, err
	}

	for _, ev := range events {
		if ev.ID == s.Event {
			return ev, nil
		}
	}
	for _, ev := range events {
		if strings.EqualFold(ev.Name, s.Event) {
			return ev, nil
		}
	}

	return api.Event{}, fmt.Errorf("no event matching %q", s.Event)
}

func (s *ShareCmd) buildContent(ev api.Event) share.Content {
	if s.Ticket {
		return share.TicketContent(s.SiteURL, share.Ticket{
			EventID:   ev.ID,
			EventName: ev.Name,
			EventDate: ev.StartDate,
			Location:  ev.Location,
			Quantity:  s.Quantity,
		})
	}

	return share.EventContent(s.SiteURL, share.Event{
		ID:          ev.ID,
		Name:        ev.Name,
		Description: ev.Description,
		StartDate:   ev.StartDate,
		Location:    ev.Location,
		ImageURL:    ev.ImageURL,
	}, s.Text)
}
