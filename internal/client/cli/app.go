// Package cli implements the interactive itemkeeper shell.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
)

// Service is the server surface the shell drives. client.GRPCClient
// implements it.
type Service interface {
	LoggedIn() bool
	Register(ctx context.Context, username string, fullName *string, password []byte) (*api.User, error)
	Login(ctx context.Context, username string, password []byte) error
	Logout()
	Me(ctx context.Context) (*api.User, error)
	DeleteMe(ctx context.Context) error
	CreateItem(ctx context.Context, title string, description *string) (*api.Item, error)
	GetItem(ctx context.Context, id int64) (*api.Item, error)
	ListItems(ctx context.Context, req *api.ListItemsRequest) (*api.ListItemsResponse, error)
	UpdateItem(ctx context.Context, id int64, title, description *string) (*api.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	Close() error
}

type App struct {
	config   *config.Config
	service  Service
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	svc, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, svc, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, svc Service, in io.Reader, out io.Writer) *App {
	return &App{config: c, service: svc, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	defer a.service.Close()

	fmt.Fprintln(a.out, "Welcome to itemkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.service.LoggedIn()
}

func (a *App) getStatus() string {
	if a.isLoggedIn() && a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

// callContext bounds a single server call by the configured timeout.
func (a *App) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
