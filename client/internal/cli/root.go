package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"evcharge/client/internal/api"
	"evcharge/client/internal/session"
)

const (
	// APIEnv overrides the default API base URL.
	APIEnv         = "EVCTL_API"
	defaultAPIURL  = "http://localhost:5000"
	defaultTimeout = 10 * time.Second
)

// errReported marks an error already shown to the user.
var errReported = errors.New("evctl: reported")

// Option customises the root command.
type Option func(*runtime)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(doer api.HTTPDoer) Option {
	return func(r *runtime) {
		r.httpClient = doer
	}
}

// runtime is the state shared by all subcommands of one invocation.
type runtime struct {
	apiURL      string
	sessionPath string
	timeout     time.Duration
	httpClient  api.HTTPDoer
}

// NewRootCommand builds the evctl command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	rt := &runtime{}
	for _, opt := range opts {
		opt(rt)
	}

	root := &cobra.Command{
		Use:   "evctl",
		Short: "evctl - book EV charging slots from the terminal",
		Long: `evctl talks to the EV charging booking API.

Sign up or log in once; the session is kept in ~/.evctl/session.json
(or $EVCTL_SESSION) until you log out or the token expires.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv(APIEnv)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&rt.apiURL, "api", apiURL, "Booking API base URL (env "+APIEnv+")")
	root.PersistentFlags().StringVar(&rt.sessionPath, "session", "", "Session file (default $"+session.PathEnv+" or ~/.evctl/session.json)")
	root.PersistentFlags().DurationVar(&rt.timeout, "timeout", defaultTimeout, "HTTP request timeout")

	root.AddCommand(
		newSignupCommand(rt),
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newLocationsCommand(rt),
		newStationsCommand(rt),
		newSlotsCommand(rt),
		newBookCommand(rt),
		newPickCommand(rt),
		newBookingsCommand(rt),
		newWatchCommand(rt),
	)
	return root
}

// Execute runs evctl and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func (rt *runtime) store() (*session.Store, error) {
	if rt.sessionPath != "" {
		return session.NewStore(rt.sessionPath), nil
	}
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	return session.NewStore(path), nil
}

func (rt *runtime) client(token string) *api.Client {
	doer := rt.httpClient
	if doer == nil {
		doer = api.NewDefaultHTTPClient(rt.timeout)
	}
	return api.NewClient(rt.apiURL, doer, token)
}

// authorized loads the stored session and returns a client carrying its token.
func (rt *runtime) authorized(cmd *cobra.Command) (*api.Client, *session.Session, error) {
	store, err := rt.store()
	if err != nil {
		return nil, nil, rt.report(cmd, err, false)
	}
	sess, err := store.Load()
	if err != nil {
		return nil, nil, rt.report(cmd, err, false)
	}
	return rt.client(sess.Token), sess, nil
}

// report prints err the way the user should see it and returns errReported.
// A rejected token clears the stored session. retry adds a hint for reads.
func (rt *runtime) report(cmd *cobra.Command, err error, retry bool) error {
	p := newPrinter(cmd)
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		if store, storeErr := rt.store(); storeErr == nil {
			_ = store.Clear()
		}
		p.errorf("Your session has expired. Run `evctl login` to sign in again.")
	case errors.Is(err, session.ErrNoSession):
		p.errorf("You are not logged in. Run `evctl login` or `evctl signup` first.")
	case errors.Is(err, api.ErrAlreadyBooked):
		p.warning("This slot is already booked. Pick another time slot.")
	case errors.As(err, &apiErr) && apiErr.Message != "":
		p.errorf("%s", apiErr.Message)
	default:
		p.errorf("Something went wrong: %v", err)
		if retry {
			p.muted("Run the command again to retry.")
		}
	}
	return errReported
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
}
