package commands

import (
	"context"
	"fmt"
)

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	// Revalidates the stored token; any failure resolves to logged out
	rt.session.Initialize(ctx)

	user := rt.session.Current()
	if user == nil {
		fmt.Println("Not logged in.")
		fmt.Println()
		fmt.Println("To log in:")
		fmt.Println("  festivo login --email <email>")
		return nil
	}

	fmt.Printf("Logged in as %s <%s> (id: %s)\n", user.Username, user.Email, user.ID)
	return nil
}
