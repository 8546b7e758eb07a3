// Command hbnb is a CLI client for the HBnB lodging-listing service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Nomen-collab/holbertonschool-hbnb/internal/api"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/catalog"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/config"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/detail"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/errs"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/session"
	"github.com/Nomen-collab/holbertonschool-hbnb/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app bundles the wired components behind the subcommands.
type app struct {
	client *api.Client
	store  token.Store
	sess   *session.Controller
}

// newApp wires the token store, API client and session controller.
func newApp(baseURL string, timeout time.Duration, tokenDir string, log *zap.Logger) *app {
	if tokenDir == "" {
		tokenDir = token.DefaultDir()
	}
	store := token.NewFile(tokenDir)
	client := api.New(api.Config{BaseURL: baseURL, Timeout: timeout, Logger: log})
	return &app{
		client: client,
		store:  store,
		sess:   session.New(client, store, log),
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintf(os.Stderr, `hbnb CLI
Usage:
  hbnb [-base-url URL] [-timeout DUR] [-v] <cmd> [args]

Commands:
  version
  login    -email <email> -password <password>      (saves token)
  logout
  status
  places   [-max-price N]
  place    -id <id>
  review   -id <id> -rating <1..5> -comment <text>
`)
	os.Exit(2)
}

// main dispatches subcommands over the wired session and view-models.
func main() {
	cfg := config.Load()

	// global flags (env-var defaults from config)
	baseURL := flag.String("base-url", cfg.BaseURL, "API base URL incl. /api/v1")
	timeout := flag.Duration("timeout", cfg.Timeout, "per-request timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	log := zap.NewNop()
	if *verbose {
		log, _ = zap.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	a := newApp(*baseURL, *timeout, cfg.TokenDir, log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("hbnb %s (%s)\n", version, buildDate)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "need -email and -password")
			os.Exit(1)
		}
		if err := a.sess.Login(ctx, *email, *password); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "logout":
		a.sess.Logout()
		fmt.Println("ok")

	case "status":
		printJSON(statusOf(a.sess))

	case "places":
		fs := flag.NewFlagSet("places", flag.ExitOnError)
		maxPrice := fs.Float64("max-price", 0, "price ceiling (0 = no filter)")
		_ = fs.Parse(flag.Args()[1:])

		vm := catalog.New(a.client, log)
		if err := vm.Load(ctx); err != nil {
			fail(err)
		}
		printJSON(vm.ApplyPriceCeiling(*maxPrice))

	case "place":
		fs := flag.NewFlagSet("place", flag.ExitOnError)
		id := fs.String("id", "", "listing id")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		vm := detail.New(a.client, a.sess, log)
		if err := vm.LoadDetail(ctx, *id); err != nil {
			fail(err)
		}
		printJSON(vm.Current())

	case "review":
		fs := flag.NewFlagSet("review", flag.ExitOnError)
		id := fs.String("id", "", "listing id")
		rating := fs.Int("rating", 0, "rating 1..5")
		comment := fs.String("comment", "", "review text")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		vm := detail.New(a.client, a.sess, log)
		if err := vm.SubmitReview(ctx, *id, *rating, *comment); err != nil {
			if errors.Is(err, errs.ErrUnauthenticated) {
				fmt.Fprintln(os.Stderr, "login required: run `hbnb login` first")
				os.Exit(1)
			}
			fail(err)
		}
		fmt.Printf("ok (%d reviews)\n", len(vm.Current().Reviews))

	default:
		usage()
	}
}

// sessionStatus is the `status` command output.
type sessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// statusOf reports session state plus decoded token claims (display only;
// an expired token is still reported as authenticated until the server
// rejects it).
func statusOf(sess *session.Controller) sessionStatus {
	cred, ok := sess.CurrentCredential()
	if !ok {
		return sessionStatus{}
	}
	st := sessionStatus{Authenticated: true, Subject: token.DecodeSubject(cred)}
	if exp := token.DecodeExpiry(cred); !exp.IsZero() {
		st.ExpiresAt = exp.UTC().Format(time.RFC3339)
	}
	return st
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
