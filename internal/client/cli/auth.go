package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

// Register prompts for a username, an optional full name and a password,
// then creates the account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	fullName, err := GetOptionalText(a.reader, "Enter full name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	u, err := a.service.Register(ctx, userName, fullName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Username, u.ID)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	if err := a.service.Login(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.service.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	u, err := a.service.Me(ctx)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s (id %d)", u.Username, u.ID)
	if u.FullName != nil {
		line = fmt.Sprintf("%s, %s", line, *u.FullName)
	}
	fmt.Fprintln(a.out, line)
	return nil
}

// DeleteAccount removes the current user and all of their items after an
// explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "This deletes your account and all your items. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	if err := a.service.DeleteMe(ctx); err != nil {
		return err
	}

	a.userName = ""
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
