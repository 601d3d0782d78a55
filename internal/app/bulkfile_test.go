package app

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tgsend/internal/dispatch"
)

func writeRecipients(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write recipients file: %v", err)
	}
	return path
}

func TestReadHandles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "one per line",
			content: "alice\nbob\ncarol\n",
			want:    []string{"alice", "bob", "carol"},
		},
		{
			name:    "blank lines skipped",
			content: "alice\n\n\nbob\n",
			want:    []string{"alice", "bob"},
		},
		{
			name:    "whitespace trimmed",
			content: "  alice \n\t@bob\t\n",
			want:    []string{"alice", "@bob"},
		},
		{
			name:    "no trailing newline",
			content: "alice\nbob",
			want:    []string{"alice", "bob"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeRecipients(t, tc.content)
			got, err := ReadHandles(path)
			if err != nil {
				t.Fatalf("ReadHandles() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ReadHandles() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReadHandlesEmptyFile(t *testing.T) {
	t.Parallel()

	path := writeRecipients(t, "\n  \n\t\n")
	if _, err := ReadHandles(path); err == nil {
		t.Fatal("ReadHandles() on blank file: expected error, got nil")
	}
}

func TestReadHandlesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadHandles(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadHandles() error = %v, want os.ErrNotExist", err)
	}
}

func TestOutcomeReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  dispatch.Outcome
		want string
	}{
		{
			name: "not found",
			out:  dispatch.Outcome{Status: dispatch.StatusNotFound},
			want: "user not found",
		},
		{
			name: "invalid handle",
			out:  dispatch.Outcome{Status: dispatch.StatusInvalidHandle},
			want: "invalid username",
		},
		{
			name: "not a user",
			out:  dispatch.Outcome{Status: dispatch.StatusNotUser},
			want: "not a user account",
		},
		{
			name: "rate limited includes wait",
			out:  dispatch.Outcome{Status: dispatch.StatusRateLimited, Wait: 13 * time.Second},
			want: "rate limited, platform asks to wait 13s",
		},
		{
			name: "blocked",
			out:  dispatch.Outcome{Status: dispatch.StatusBlocked},
			want: "delivery refused (blocked or restricted)",
		},
		{
			name: "failed with cause",
			out:  dispatch.Outcome{Status: dispatch.StatusFailed, Err: errors.New("wire broke")},
			want: "wire broke",
		},
		{
			name: "failed without cause",
			out:  dispatch.Outcome{Status: dispatch.StatusFailed},
			want: "send failed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := outcomeReason(tc.out); got != tc.want {
				t.Fatalf("outcomeReason() = %q, want %q", got, tc.want)
			}
		})
	}
}
