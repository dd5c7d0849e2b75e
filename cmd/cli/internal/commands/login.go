package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password (prompted when omitted)" env:"FESTIVO_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	password := l.Password
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	token, user, err := rt.client.Login(ctx, l.Email, password)
	if err != nil {
		return err
	}

	if err := rt.session.Login(token, user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Username, user.Email)
	return nil
}
