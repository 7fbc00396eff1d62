package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
)

var errUsage = errors.New("invalid arguments")

func (a *App) AddItem(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	description, err := GetOptionalText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	it, err := a.service.CreateItem(ctx, title, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created item #%d\n", it.ID)
	return nil
}

// List shows one page of items.
//
//	list [-q text] [-s field] [-o asc|desc] [-p page]
func (a *App) List(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	search := fs.String("q", "", "search text")
	sortBy := fs.String("s", "id", "sort field")
	order := fs.String("o", "asc", "sort order")
	page := fs.Int("p", 1, "page number")

	if err := fs.Parse(args); err != nil || *page < 1 {
		fmt.Fprintln(a.out, "Usage: list [-q text] [-s field] [-o asc|desc] [-p page]")
		return errUsage
	}
	// bare words after the flags are taken as the search text
	if rest := fs.Args(); len(rest) > 0 && *search == "" {
		*search = strings.Join(rest, " ")
	}

	limit := a.config.PageSize
	req := &api.ListItemsRequest{
		Search: *search,
		Limit:  limit,
		Offset: (*page - 1) * limit,
		SortBy: *sortBy,
		Order:  *order,
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	resp, err := a.service.ListItems(ctx, req)
	if err != nil {
		return err
	}

	if len(resp.Items) == 0 {
		fmt.Fprintf(a.out, "No items on this page (%d total)\n", resp.Total)
		return nil
	}

	first := resp.Offset + 1
	fmt.Fprintf(a.out, "Items %d-%d of %d\n", first, resp.Offset+len(resp.Items), resp.Total)
	for _, it := range resp.Items {
		fmt.Fprintln(a.out, formatItemLine(it))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	it, err := a.service.GetItem(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, formatItemLine(it))
	if it.Description != nil {
		fmt.Fprintf(a.out, "  %s\n", *it.Description)
	}
	return nil
}

// Edit prompts for a new title and description; empty answers keep the
// current values.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	title, err := GetOptionalText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	description, err := GetOptionalText(a.reader, "New description (empty to keep)", a.out)
	if err != nil {
		return err
	}

	if title == nil && description == nil {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	it, err := a.service.UpdateItem(ctx, id, title, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated %s\n", formatItemLine(it))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.itemID(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.callContext(ctx)
	defer cancel()

	if err := a.service.DeleteItem(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted item #%d\n", id)
	return nil
}

// itemID takes the id from the first argument, or asks for it.
func (a *App) itemID(args []string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := GetSimpleText(a.reader, "Enter item id", a.out)
		if err != nil {
			return 0, err
		}
		raw = s
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(a.out, "Invalid item id %q\n", raw)
		return 0, errUsage
	}
	return id, nil
}

func formatItemLine(it *api.Item) string {
	owner := strconv.FormatInt(it.OwnerID, 10)
	if it.Owner != nil {
		owner = it.Owner.Username
	}
	return fmt.Sprintf("#%d %s (owner %s)", it.ID, it.Title, owner)
}
