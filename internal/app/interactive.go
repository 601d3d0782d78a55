package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"tgsend/internal/dispatch"
	"tgsend/pkg/logx"
)

// runInteractive reads recipient/message pairs from stdin until the user
// types quit or the input ends. A canceled context stops the loop at the
// next prompt; a read blocked on the terminal is only released by Enter
// or EOF.
func (a *App) runInteractive(ctx context.Context, d *dispatch.Dispatcher) error {
	fmt.Println("Interactive mode. Type 'quit' or 'exit' to stop.")

	sc := bufio.NewScanner(os.Stdin)
	var sent, failed int
	for {
		if ctx.Err() != nil {
			break
		}

		fmt.Print("\nRecipient @username: ")
		if !sc.Scan() {
			break
		}
		handle := strings.TrimSpace(sc.Text())
		if handle == "" {
			continue
		}
		if handle == "quit" || handle == "exit" {
			break
		}

		fmt.Print("Message: ")
		if !sc.Scan() {
			break
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			fmt.Println("Empty message, nothing sent.")
			continue
		}

		out := d.SendWithRetry(ctx, handle, text)
		printOutcome(out)
		if out.OK() {
			sent++
		} else {
			failed++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	a.log.Info("interactive session finished", logx.Int("sent", sent), logx.Int("failed", failed))
	if sent+failed > 0 {
		fmt.Printf("\nSession done: %d sent, %d failed\n", sent, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d message(s) failed", failed)
	}
	return nil
}
