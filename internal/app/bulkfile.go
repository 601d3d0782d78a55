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

// ReadHandles loads recipient handles from path, one per line. Surrounding
// whitespace is trimmed and blank lines are skipped; there is no comment
// syntax, every remaining line is a handle.
func ReadHandles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var handles []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		handles = append(handles, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(handles) == 0 {
		return nil, fmt.Errorf("no recipients in %s", path)
	}
	return handles, nil
}

func (a *App) runBulk(ctx context.Context, d *dispatch.Dispatcher, path, text string) error {
	handles, err := ReadHandles(path)
	if err != nil {
		return err
	}
	a.log.Info("recipient list loaded", logx.String("path", path), logx.Int("count", len(handles)))
	fmt.Printf("Sending to %d recipient(s), %s between messages...\n", len(handles), a.cfg.Delay)

	res, batchErr := d.SendBatch(ctx, handles, text)
	printSummary(res)
	if batchErr != nil {
		return batchErr
	}
	if res.HasFailures() {
		return fmt.Errorf("%d of %d messages failed", res.FailureCount(), res.Total)
	}
	return nil
}

func printSummary(res dispatch.BatchResult) {
	fmt.Printf("\nDone: %d sent, %d failed (of %d)\n", res.SuccessCount(), res.FailureCount(), res.Total)
	if res.HasFailures() {
		fmt.Printf("Failed: %s\n", strings.Join(res.Failed, ", "))
	}
	if !res.Complete() {
		fmt.Printf("Interrupted: %d recipient(s) not attempted\n", res.Total-len(res.Outcomes))
	}
}
