package commands

import (
	"context"
	"fmt"
)

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	rt.session.Logout()

	fmt.Println("Logged out.")
	return nil
}
