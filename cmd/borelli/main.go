package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Griffon01/borelli-advocacia/internal/agenda"
	"github.com/Griffon01/borelli-advocacia/internal/api"
	"github.com/Griffon01/borelli-advocacia/internal/config"
	"github.com/Griffon01/borelli-advocacia/internal/dashboard"
	"github.com/Griffon01/borelli-advocacia/internal/logging"
	"github.com/Griffon01/borelli-advocacia/internal/model"
	"github.com/Griffon01/borelli-advocacia/internal/session"
)

func main() {
	// Load .env first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "borelli",
		Usage: "Scheduling dashboard for the Borelli Advocacia webhook backend.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to the YAML config file."},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			agendaCommand(),
			diligencesCommand(),
			teamCommand(),
			eventCommand(),
			syncCommand(),
			todayCommand(),
			weekCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// appEnv bundles the pieces every command needs.
type appEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *api.Client
	sessions *session.Store
}

func setup(c *cli.Context) (*appEnv, error) {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.Setup(cfg.LogLevel)

	sessPath := cfg.SessionFile
	if sessPath == "" {
		sessPath, err = session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
	}

	return &appEnv{
		cfg:      cfg,
		logger:   logger,
		client:   api.NewClient(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, logger.With("component", "api")),
		sessions: session.NewStore(sessPath, logger.With("component", "session")),
	}, nil
}

func requireUser(env *appEnv) (*model.User, error) {
	user := env.sessions.Load()
	if user == nil {
		return nil, fmt.Errorf("not logged in; run 'borelli login <email>' first")
	}
	return user, nil
}

// newController sets up the dashboard for the logged-in user. load controls
// whether the initial fetch runs; sync reloads on its own.
func newController(c *cli.Context, load bool) (*appEnv, *dashboard.Controller, error) {
	env, err := setup(c)
	if err != nil {
		return nil, nil, err
	}
	user, err := requireUser(env)
	if err != nil {
		return nil, nil, err
	}

	ctrl := dashboard.New(env.client, *user, time.Now(), env.logger.With("component", "dashboard"))
	if load {
		if err := ctrl.Load(c.Context); err != nil {
			return nil, nil, fmt.Errorf("load data: %w", err)
		}
	}
	return env, ctrl, nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Authenticate by registered email.",
		ArgsUsage: "[email]",
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return err
			}

			email := c.Args().First()
			if email == "" {
				email = prompt("Email: ")
			}
			if email == "" {
				return fmt.Errorf("an email is required")
			}

			user, err := env.client.Login(c.Context, email)
			if err != nil {
				return err
			}
			if err := env.sessions.Save(user); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role.Info().Label)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored session.",
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return err
			}
			if err := env.sessions.Clear(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged-in user.",
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return err
			}
			user, err := requireUser(env)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> — %s\n", user.Name, user.Email, user.Role.Info().Label)
			return nil
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Value: string(agenda.AllTypes), Usage: "Event type filter (audiencia, reuniao, diligencia, prazo, interno, comercial or all)."},
		&cli.StringFlag{Name: "search", Usage: "Match against title or client name, case-insensitive."},
	}
}

func applyFilters(c *cli.Context, ctrl *dashboard.Controller) {
	ctrl.SetTypeFilter(model.EventType(c.String("type")))
	ctrl.SetSearch(c.String("search"))
}

func agendaCommand() *cli.Command {
	flags := append(filterFlags(),
		&cli.StringFlag{Name: "date", Usage: "Show the week containing this date (YYYY-MM-DD)."},
		&cli.IntFlag{Name: "weeks", Usage: "Move the visible week forward or back by N weeks."},
	)
	return &cli.Command{
		Name:  "agenda",
		Usage: "Show the weekly calendar.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}
			applyFilters(c, ctrl)

			if d := c.String("date"); d != "" {
				anchor, err := time.ParseInLocation(agenda.DateLayout, d, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", d, err)
				}
				ctrl.GoToDate(anchor)
			}
			ctrl.NavigateWeek(c.Int("weeks"))

			printStats(os.Stdout, ctrl.Stats())
			fmt.Println()
			printWeek(os.Stdout, ctrl, time.Now())
			return nil
		},
	}
}

func diligencesCommand() *cli.Command {
	return &cli.Command{
		Name:  "diligences",
		Usage: "List diligence events.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "Match against title or client name, case-insensitive."},
		},
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}
			ctrl.SetSearch(c.String("search"))

			diligences := agenda.Diligences(ctrl.Filtered())
			if len(diligences) == 0 {
				fmt.Println("Nenhuma diligência encontrada.")
				return nil
			}
			printEventList(os.Stdout, diligences)
			return nil
		},
	}
}

func teamCommand() *cli.Command {
	return &cli.Command{
		Name:  "team",
		Usage: "Show the firm roster and per-member workload.",
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}
			printTeam(os.Stdout, ctrl.Team(), ctrl.Events(), ctrl.User().CanViewAll())
			return nil
		},
	}
}

func eventCommand() *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Inspect and mutate events.",
		Subcommands: []*cli.Command{
			eventShowCommand(),
			eventCreateCommand(),
			eventStatusCommand(),
			eventCommentCommand(),
			eventDeleteCommand(),
		},
	}
}

func eventIDArg(c *cli.Context) (int64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("an event id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event id %q", raw)
	}
	return id, nil
}

func eventShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one event with assignees and comments.",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return err
			}
			if _, err := requireUser(env); err != nil {
				return err
			}
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}

			event, err := env.client.Event(c.Context, id)
			if err != nil {
				return err
			}
			printEventDetail(os.Stdout, event)
			return nil
		},
	}
}

func eventCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new event.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "date", Required: true, Usage: "Calendar date, YYYY-MM-DD."},
			&cli.StringFlag{Name: "time", Required: true, Usage: "Time of day, HH:MM."},
			&cli.StringFlag{Name: "type", Value: string(model.TypeMeeting)},
			&cli.StringFlag{Name: "status", Value: string(model.StatusPending)},
			&cli.StringFlag{Name: "location"},
			&cli.StringFlag{Name: "client"},
			&cli.StringFlag{Name: "category", Value: "cliente"},
		},
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}

			draft := model.EventDraft{
				Title:      c.String("title"),
				Type:       model.EventType(c.String("type")),
				Date:       c.String("date"),
				Time:       c.String("time"),
				Status:     model.Status(c.String("status")),
				Location:   c.String("location"),
				ClientName: c.String("client"),
				Category:   c.String("category"),
			}
			if err := ctrl.CreateEvent(c.Context, draft); err != nil {
				return err
			}
			fmt.Println("Compromisso criado.")
			return nil
		},
	}
}

func eventStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Change an event's status.",
		ArgsUsage: "<id> <status>",
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}
			status := model.Status(c.Args().Get(1))
			if status == "" {
				return fmt.Errorf("a status is required (pendente, confirmado, concluido, urgente, cancelado)")
			}
			if !status.Known() {
				fmt.Fprintf(os.Stderr, "warning: %q is not a known status; sending it as-is\n", status)
			}

			if err := ctrl.UpdateStatus(c.Context, id, status); err != nil {
				return err
			}
			fmt.Printf("Event #%d is now %s.\n", id, status.Info().Label)
			return nil
		},
	}
}

func eventCommentCommand() *cli.Command {
	return &cli.Command{
		Name:      "comment",
		Usage:     "Add a comment to an event.",
		ArgsUsage: "<id> <text...>",
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}
			content := strings.Join(c.Args().Slice()[1:], " ")

			if err := ctrl.AddComment(c.Context, id, content); err != nil {
				return err
			}
			fmt.Println("Comentário adicionado.")
			return nil
		},
	}
}

func eventDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an event.",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt."},
		},
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, true)
			if err != nil {
				return err
			}
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}

			if !c.Bool("yes") {
				answer := prompt(fmt.Sprintf("Delete event #%d? [y/N] ", id))
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := ctrl.DeleteEvent(c.Context, id); err != nil {
				return err
			}
			fmt.Printf("Event #%d deleted.\n", id)
			return nil
		},
	}
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Trigger the external calendar import.",
		Action: func(c *cli.Context) error {
			_, ctrl, err := newController(c, false)
			if err != nil {
				return err
			}

			synced, err := ctrl.SyncCalendar(c.Context)
			if err != nil {
				return fmt.Errorf("calendar sync failed: %w", err)
			}
			fmt.Printf("Sincronizado! %d eventos importados.\n", synced)
			return nil
		},
	}
}

func todayCommand() *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "Show today's notification feed.",
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return err
			}
			if _, err := requireUser(env); err != nil {
				return err
			}
			events, err := env.client.TodayEvents(c.Context)
			if err != nil {
				return err
			}
			printEventList(os.Stdout, events)
			return nil
		},
	}
}

func weekCommand() *cli.Command {
	return &cli.Command{
		Name:  "week",
		Usage: "Show this week's notification feed.",
		Action: func(c *cli.Context) error {
			env, err := setup(c)
			if err != nil {
				return err
			}
			if _, err := requireUser(env); err != nil {
				return err
			}
			events, err := env.client.WeekEvents(c.Context)
			if err != nil {
				return err
			}
			printEventList(os.Stdout, events)
			return nil
		},
	}
}
