package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mmcdole/pixa/internal/config"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/paging"
	"github.com/mmcdole/pixa/internal/trigger"
	"github.com/mmcdole/pixa/internal/tui/styles"
	"golang.org/x/term"
)

// defaultPlainWidth is used when stdout has no size
const defaultPlainWidth = 120

// noticePrinter writes notices as plain lines
type noticePrinter struct {
	w io.Writer
}

func (p noticePrinter) Notify(n domain.Notice) {
	label := "info"
	switch n.Kind {
	case domain.NoticeWarning:
		label = "warning"
	case domain.NoticeFailure:
		label = "error"
	}
	fmt.Fprintf(p.w, "[%s] %s\n", label, n.Message)
}

// runPlain prints up to opts.pages pages for opts.query, pressing the
// "load more" control once per extra page
func runPlain(searcher domain.PhotoSearcher, cfg *config.Config, opts options, logger *slog.Logger) error {
	width := defaultPlainWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return printPages(context.Background(), searcher, cfg, opts, os.Stdout, os.Stderr, width, logger)
}

func printPages(ctx context.Context, searcher domain.PhotoSearcher, cfg *config.Config, opts options, out, errOut io.Writer, width int, logger *slog.Logger) error {
	ctrl := paging.NewController(searcher, noticePrinter{w: errOut}, paging.Options{
		PerPage:        cfg.API.PerPage,
		EndNoticeDelay: -1,
	}, logger)
	more := trigger.NewManual(ctrl)

	u, err := ctrl.SubmitQuery(ctx, opts.query)
	if err != nil {
		return err
	}
	printPhotos(out, u.Photos, 0, width)
	printed := len(u.Photos)

	for page := 1; page < opts.pages; page++ {
		f, ok := more.Press()
		if !ok {
			break
		}
		u := ctrl.Resolve(ctrl.Execute(ctx, f))
		if u.Err != nil {
			return u.Err
		}
		printPhotos(out, u.Photos, printed, width)
		printed += len(u.Photos)
	}
	return nil
}

// printPhotos writes one tab separated line per photo, numbered from offset+1
func printPhotos(w io.Writer, photos []domain.Photo, offset, width int) {
	for i, p := range photos {
		line := fmt.Sprintf("%d\t%s\t♥ %d\t↓ %d\t%s",
			offset+i+1, p.LargeImageURL, p.Likes, p.Downloads, strings.TrimSpace(p.TagLine()))
		fmt.Fprintln(w, styles.Truncate(line, width))
	}
}
