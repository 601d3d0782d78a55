package telegram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"golang.org/x/term"
)

// noSignUp refuses account registration: this tool only signs into accounts
// that already exist.
type noSignUp struct{}

func (noSignUp) SignUp(ctx context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign-up is not supported")
}

func (noSignUp) AcceptTermsOfService(ctx context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

// termAuth answers the sign-in flow from the terminal. Prompts go to stderr
// so stdout stays reserved for command output.
type termAuth struct {
	noSignUp

	phone    string
	password string
}

func (a termAuth) Phone(ctx context.Context) (string, error) {
	return a.phone, nil
}

func (a termAuth) Password(ctx context.Context) (string, error) {
	if a.password != "" {
		return a.password, nil
	}
	fmt.Fprint(os.Stderr, "Two-step verification password: ")
	pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pwd)), nil
}

func (a termAuth) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	fmt.Fprintf(os.Stderr, "Login code sent to %s: ", a.phone)
	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}
