package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/spoonmap/internal/e2etest"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/logging"
)

var errSmoke = errors.NewSentinel("unexpected page content")

// testBrowse walks from the show list to a chef and plans a trip.
func testBrowse(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home")
	}
	showPath, ok := doc.Find("a.show-card").First().Attr("href")
	if !ok {
		return errors.Wrap(errSmoke, "no shows listed")
	}
	if doc, err = client.GetDoc(ctx, showPath); err != nil {
		return errors.Wrap(err, "get show", slog.String("path", showPath))
	}
	chefPath, ok := doc.Find(".roster a.chef-card").First().Attr("href")
	if !ok {
		return errors.Wrap(errSmoke, "empty roster", slog.String("path", showPath))
	}
	if doc, err = client.SubmitForm(ctx, chefPath, `form[action="/trip/toggle"]`); err != nil {
		return errors.Wrap(err, "add restaurant to trip", slog.String("path", chefPath))
	}
	if count := doc.Find("#trip .trip-item").Length(); count != 1 {
		return errors.Wrap(errSmoke, "trip not updated", slog.Int("items", count))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = testBrowse(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error browsing", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
