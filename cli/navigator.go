package main

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/gamerecs/gamerecs/sdk/session"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// terminalNavigator carries out the session manager's navigation requests in
// a terminal. Views become hints about which command to run next.
type terminalNavigator struct {
	out io.Writer
	// browse opens a URL in a browser. If nil, or if it fails, the URL is
	// printed instead.
	browse func(url string) error
	// refresh fetches fresh state, including a fresh CSRF cookie, from the API.
	refresh func(context.Context) error
}

func (t *terminalNavigator) Redirect(_ context.Context, view session.View) {
	switch view {
	case session.ViewLogin:
		fmt.Fprintln(
			t.out,
			"\nPlease log in with `gamerecs login` to continue.",
		)
	case session.ViewDashboard:
		fmt.Fprintln(
			t.out,
			"\nTo switch accounts, log out first with `gamerecs logout`.",
		)
	case session.ViewProfile:
		fmt.Fprintln(
			t.out,
			"\nView your profile with `gamerecs profile get`.",
		)
	default:
		glog.Warningf("no hint for view %q", view)
	}
}

func (t *terminalNavigator) Reload(ctx context.Context) {
	fmt.Fprintln(
		t.out,
		"\nThe request's security token was rejected. It has been refreshed; "+
			"please try again.",
	)
	if t.refresh == nil {
		return
	}
	if err := t.refresh(ctx); err != nil {
		glog.Errorf("error refreshing security token: %s", err)
	}
}

func (t *terminalNavigator) Browse(_ context.Context, url string) error {
	if t.browse != nil {
		err := t.browse(url)
		if err == nil {
			fmt.Fprintf(t.out, "Opened  %s  in your browser.\n", url)
			return nil
		}
		glog.Warningf("error opening browser: %s", err)
	}
	fmt.Fprintf(t.out, "Please visit  %s  to complete authentication.\n", url)
	return nil
}

func openBrowser(url string) error {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command(
			"rundll32",
			"url.dll,FileProtocolHandler",
			url,
		).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = errors.New("unsupported OS")
	}
	return errors.Wrapf(err, "error opening %s using the system's browser", url)
}
