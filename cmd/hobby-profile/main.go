package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hobbyhub/hobbies/pkg/hobbygo"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/cookies"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/debug"
	"github.com/hobbyhub/hobbies/pkg/profile"
)

// Information to find out exactly which commit the tool was built from.
// These are filled at build time with the -X linker flag.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const usage = `Usage: hobby-profile [-config path] <command> [args]

Commands:
  whoami                                       show the current user
  hobbies                                      list hobbies the user can still add
  add-hobby <id>                               attach a hobby to the user
  update-profile <first> <last> <email> [dob]  save profile fields (dob as YYYY-MM-DD)
  change-password <current> <new> <confirm>    change the account password
  csrf                                         fetch and print a fresh CSRF token
  logout                                       end the session
  version                                      print build information
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := profile.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	log := debug.NewLoggerWithLevel(level)

	client := hobbygo.NewClient(&hobbygo.ClientOpts{
		BaseURL: cfg.BaseURL,
		Cookies: cookies.NewCookiesFromString(cfg.Cookies),
	}, log.With().Str("component", "hobby_client").Logger())
	if cfg.Proxy != "" {
		if err = client.SetProxy(cfg.Proxy); err != nil {
			log.Fatal().Err(err).Msg("Failed to set proxy")
		}
	}

	store := profile.NewStore(client, &profile.StoreOpts{Config: cfg}, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = log.WithContext(profile.WithStore(ctx, store))

	if err = run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		if msg := store.ErrorMessage(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Command failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	store := profile.FromContext(ctx)

	switch command {
	case "whoami":
		user, err := store.FetchUserData(ctx)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"displayname": store.DisplayName(),
			"user":        user,
		})
	case "hobbies":
		if err := store.Refresh(ctx); err != nil {
			return err
		}
		return printJSON(store.AvailableHobbies())
	case "add-hobby":
		if len(args) != 1 {
			return usageError(command)
		}
		hobbyID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid hobby id %q: %w", args[0], err)
		}
		if err = store.AddHobbyToUser(ctx, hobbyID); err != nil {
			return err
		}
		return printJSON(store.User().Hobbies)
	case "update-profile":
		if len(args) < 3 || len(args) > 4 {
			return usageError(command)
		}
		var dob string
		if len(args) == 4 {
			dob = args[3]
		}
		// The local patch needs a loaded user.
		if _, err := store.FetchUserData(ctx); err != nil {
			return err
		}
		store.SetEditMode(true)
		if err := store.SaveChangesToUser(ctx, args[0], args[1], args[2], dob); err != nil {
			return err
		}
		return printJSON(store.User())
	case "change-password":
		if len(args) != 3 {
			return usageError(command)
		}
		store.SetPasswordEditMode(true)
		if err := store.ChangePassword(ctx, args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println(store.SuccessMessage())
		return nil
	case "csrf":
		token, err := store.RefreshCSRFToken(ctx)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	case "logout":
		return store.Logout(ctx)
	case "version":
		fmt.Printf("hobby-profile %s (commit %s, built %s)\n", Tag, Commit, BuildTime)
		return nil
	default:
		return usageError(command)
	}
}

func usageError(command string) error {
	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("invalid usage of %q", command)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
