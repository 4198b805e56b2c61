package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/session"
)

const shellHelp = `Type a learning goal to get recommendations.
Commands: :helpful, :not-helpful, :history, :help, :quit`

// runShell answers one query per input line until EOF or :quit.
func runShell(ctx context.Context, in io.Reader, out io.Writer, svc *session.Service, request func(string) session.Request, asJSON bool) error {
	fmt.Fprintln(out, shellHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case ":quit", ":exit":
			return nil
		case ":help":
			fmt.Fprintln(out, shellHelp)
			continue
		case ":helpful", ":not-helpful":
			kind := core.FeedbackHelpful
			if line == ":not-helpful" {
				kind = core.FeedbackNotHelpful
			}
			tally, err := svc.RecordFeedback(ctx, kind)
			if err != nil {
				return err
			}
			printTally(out, tally)
			continue
		case ":history":
			entries, err := svc.History(ctx, 5)
			if err != nil {
				return err
			}
			printHistory(out, entries)
			continue
		}

		resp, err := svc.Recommend(ctx, request(line))
		if errors.Is(err, session.ErrEmptyQuery) {
			continue
		}
		if err != nil {
			return err
		}
		if asJSON {
			if err := writeJSON(out, resp); err != nil {
				return err
			}
			continue
		}
		printResponse(out, resp)
	}
	fmt.Fprintln(out)

	return scanner.Err()
}
