package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/jjenkins/vinlookup/internal/service"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Decode VINs interactively",
	Long: `Shell reads one VIN per line and prints the decoded fields.

A new line starts a new search and cancels a search that is still waiting
for the API. Type "images" to open a Google Images search for the last
decoded vehicle, and "quit" to leave.`,
	Run: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type searchResult struct {
	out service.Outcome
	err error
}

func runShell(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookupStore, db := openHistory(ctx, cfg)
	if db != nil {
		defer db.Close()
	}

	session := service.NewSession(newResolver(cfg, lookupStore))
	repl := &shell{
		session: session,
		opener:  service.BrowserOpener{},
		out:     os.Stdout,
		bold:    useBold(),
	}
	repl.run(ctx, os.Stdin)
}

// shell owns the last outcome; the image search reads it from here only
type shell struct {
	session *service.Session
	opener  service.URLOpener
	out     io.Writer
	bold    bool
	last    service.Outcome
}

func (s *shell) run(ctx context.Context, in io.Reader) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make(chan searchResult)
	pending := 0
	input := lines
	var current uuid.UUID

	fmt.Fprint(s.out, "VIN> ")
	for {
		if input == nil && pending == 0 {
			return
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return

		case line, ok := <-input:
			if !ok {
				// Drain in-flight searches before leaving on EOF
				input = nil
				continue
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "":
			case "quit", "exit":
				return
			case "images":
				s.openImages()
			default:
				s.last = service.Outcome{}
				ticket := s.session.Begin(ctx)
				current = ticket.ID()
				pending++
				go func(line string) {
					out, err := s.session.Run(ticket, line)
					select {
					case results <- searchResult{out: out, err: err}:
					case <-ctx.Done():
					}
				}(line)
				continue
			}
			fmt.Fprint(s.out, "VIN> ")

		case r := <-results:
			pending--
			if errors.Is(r.err, service.ErrSuperseded) || r.out.ID != current {
				continue
			}
			s.show(r.out)
			fmt.Fprint(s.out, "VIN> ")
		}
	}
}

func (s *shell) show(out service.Outcome) {
	s.last = out
	fmt.Fprintln(s.out)
	if out.State != service.StateSuccess {
		fmt.Fprintln(s.out, out.Message())
		return
	}
	printLines(s.out, out.Lines, s.bold)
	fmt.Fprintln(s.out, `Type "images" to search for pictures of this vehicle.`)
}

func (s *shell) openImages() {
	if !s.last.ImageSearchAvailable() {
		fmt.Fprintln(s.out, service.UserMessage(service.ErrImageSearchUnavailable))
		return
	}

	u, err := service.OpenImageSearch(s.opener, s.last.Vehicle.Ref())
	if err != nil {
		fmt.Fprintln(s.out, service.UserMessage(err))
		return
	}
	fmt.Fprintf(s.out, "Opened %s\n", u)
}
