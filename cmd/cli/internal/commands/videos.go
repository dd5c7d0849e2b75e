package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

type VideosCmd struct {
	Query      string `arg:"" help:"Search query"`
	MaxResults int    `help:"Maximum number of results" default:"10"`
}

func (v *VideosCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	videos, err := rt.client.SearchVideos(ctx, v.Query, v.MaxResults)
	if err != nil {
		return err
	}

	if len(videos) == 0 {
		fmt.Println("No videos found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCHANNEL\tPUBLISHED\tURL")

	for _, video := range videos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(video.Title, 40),
			truncate(video.ChannelTitle, 20),
			video.PublishedAt,
			video.URL)
	}

	w.Flush()
	return nil
}
