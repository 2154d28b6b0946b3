package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"chirpify/internal/domain"
	"chirpify/internal/usecase"
)

type corrector interface {
	Correct(ctx context.Context, in usecase.CorrectInput) (usecase.CorrectOutput, error)
}

// app is the terminal front end. Gateway outcomes are rendered by the
// notifier; only input rejections are printed here.
type app struct {
	corrector corrector
	model     string
	in        io.Reader
	out       io.Writer
}

// once runs a single correction. A request that has started is never
// aborted, so cancellation of ctx is not passed on to it.
func (a *app) once(ctx context.Context, sentence string) error {
	_, err := a.corrector.Correct(context.WithoutCancel(ctx), usecase.CorrectInput{Model: a.model, Sentence: sentence})
	if err != nil {
		a.warn(err)
	}
	return err
}

// loop prompts until stdin is exhausted or ctx is done. Cancellation is
// observed while waiting for input; an in-flight request runs to completion.
func (a *app) loop(ctx context.Context) {
	fmt.Fprintf(a.out, "🐤 Chirpify — sharpen your grammar wings. (model: %s)\n", a.model)
	lines := readLines(ctx, a.in)
	for {
		fmt.Fprint(a.out, "\nType your sentence (Ctrl-D to quit): ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.out)
				return
			}
			_ = a.once(ctx, line)
		}
	}
}

// readLines scans r on its own goroutine so callers can select on ctx while
// a read is blocked. The channel is closed at EOF or once ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (a *app) warn(err error) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		fmt.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	switch ue.Code {
	case usecase.ErrorInvalidInput, usecase.ErrorUnknownModel:
		fmt.Fprintf(a.out, "⚠️  %s\n", ue.Display())
	}
}

func printModels(w io.Writer) {
	def := domain.DefaultModel().ID
	for _, m := range domain.Models {
		marker := " "
		if m.ID == def {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-36s %s\n", marker, m.ID, m.Note)
	}
}
