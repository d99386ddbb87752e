package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/client/session"
	"github.com/dmitrijs2005/letshang/internal/filex"
	"github.com/dmitrijs2005/letshang/internal/netx"
	"github.com/dmitrijs2005/letshang/internal/server/auth"
)

var ErrUsage = errors.New("usage error")

const usage = `usage: hangctl [-a addr] [-t token] [-s secret] [-w seconds] [-c config.json] <command> [args]

commands:
  token <user-id> [-ttl minutes]     sign a development access token
  ping                               check the server is serving
  profile [-name n] [-avatar key]    show or update your profile
  avatar <image-file>                upload an avatar and set it on your profile
  list                               active hangs
  show <hang-id>                     one hang
  create -title t -date d -time t -location l [-description d] [-max n] [-type t]
  update <hang-id> (same flags as create)
  cancel <hang-id>
  complete <hang-id>
  rsvp <hang-id> going|maybe|not-going
  suggest <hang-id> [-type time|location|general] <text>
  vote <suggestion-id>
  share <hang-id>
  stats`

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// Run executes one command. Commands other than token and ping sign the
// session in with the configured token first.
func (a *App) Run(ctx context.Context, cmd string, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	switch cmd {
	case "", "help":
		a.println(usage)
		return nil
	case "token":
		return a.token(args)
	case "ping":
		if err := a.client.Ping(ctx); err != nil {
			return err
		}
		a.println("SERVING")
		return nil
	}

	handler, ok := map[string]func(context.Context, []string) error{
		"profile":  a.profile,
		"avatar":   a.avatar,
		"list":     a.list,
		"show":     a.show,
		"create":   a.create,
		"update":   a.update,
		"cancel":   a.cancel,
		"complete": a.complete,
		"rsvp":     a.rsvp,
		"suggest":  a.suggest,
		"vote":     a.vote,
		"share":    a.share,
		"stats":    a.stats,
	}[cmd]
	if !ok {
		return usageErr("unknown command %q", cmd)
	}

	if a.config.AccessToken == "" {
		return usageErr("no access token; pass -t or run hangctl token")
	}
	if err := a.session.HandleAuth(ctx, session.SignedIn, a.config.AccessToken); err != nil {
		return err
	}
	return handler(ctx, args)
}

// saved treats a change that reached the server as done even when the
// refresh after it failed, so the command is not repeated.
func (a *App) saved(ctx context.Context, err error) error {
	if errors.Is(err, session.ErrReloadFailed) {
		a.logger.Warn(ctx, "change saved but the hang list could not be refreshed", "error", err)
		return nil
	}
	return err
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseInterspersed lets flags follow positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, usageErr("%v", err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

func oneID(name string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", usageErr("%s <id>", name)
	}
	return args[0], nil
}

func (a *App) token(args []string) error {
	fs := newFlagSet("token")
	ttl := fs.Int("ttl", 24*60, "validity in minutes")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return usageErr("token <user-id> [-ttl minutes]")
	}
	tok, err := auth.GenerateToken(pos[0], []byte(a.config.SecretKey), time.Duration(*ttl)*time.Minute)
	if err != nil {
		return err
	}
	a.println(tok)
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := newFlagSet("profile")
	name := fs.String("name", "", "display name")
	avatar := fs.String("avatar", "", "avatar object key")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}

	if *name != "" || *avatar != "" {
		n := *name
		if n == "" {
			if p := a.session.Profile(); p != nil {
				n = p.Name
			}
		}
		av := *avatar
		if av == "" {
			if p := a.session.Profile(); p != nil {
				av = p.AvatarURL
			}
		}
		if err := a.saved(ctx, a.session.UpdateProfile(ctx, n, av)); err != nil {
			return err
		}
	}
	return a.printJSON(a.session.Profile())
}

func (a *App) avatar(ctx context.Context, args []string) error {
	path, err := oneID("avatar", args)
	if err != nil {
		return err
	}
	p := a.session.Profile()
	if p == nil || p.Name == "" {
		return usageErr("set a name with profile -name first")
	}

	data, ct, err := filex.ReadImage(path, filex.MaxImageSize)
	if err != nil {
		return err
	}
	up, err := a.client.PresignAvatarUpload(ctx, ct)
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, up.URL, up.ContentType, data); err != nil {
		return err
	}
	if err := a.saved(ctx, a.session.UpdateProfile(ctx, p.Name, up.Key)); err != nil {
		return err
	}
	a.logger.Info(ctx, "avatar uploaded", "key", up.Key)
	return a.printJSON(a.session.Profile())
}

func (a *App) list(ctx context.Context, args []string) error {
	if a.session.NeedsOnboarding() {
		return usageErr("set a name with profile -name first")
	}
	return a.printJSON(a.session.Hangs())
}

func (a *App) show(ctx context.Context, args []string) error {
	id, err := oneID("show", args)
	if err != nil {
		return err
	}
	v, err := a.client.GetHang(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(v)
}

func hangFlags(name string) (*flag.FlagSet, *api.HangInput) {
	fs := newFlagSet(name)
	in := &api.HangInput{}
	fs.StringVar(&in.Title, "title", "", "title")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.StringVar(&in.Date, "date", "", "date, e.g. 2025-06-01")
	fs.StringVar(&in.Time, "time", "", "time, e.g. 10:00")
	fs.StringVar(&in.Location, "location", "", "location")
	fs.StringVar(&in.MaxAttendees, "max", "", "max attendees")
	fs.StringVar(&in.Type, "type", "", "hang type")
	return fs, in
}

func (a *App) create(ctx context.Context, args []string) error {
	fs, in := hangFlags("create")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	h, err := a.session.CreateHang(ctx, *in)
	if err := a.saved(ctx, err); err != nil {
		return err
	}
	return a.printJSON(h)
}

func (a *App) update(ctx context.Context, args []string) error {
	fs, in := hangFlags("update")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	id, err := oneID("update", pos)
	if err != nil {
		return err
	}
	if err := a.saved(ctx, a.session.UpdateHang(ctx, id, *in)); err != nil {
		return err
	}
	a.println("updated", id)
	return nil
}

func (a *App) cancel(ctx context.Context, args []string) error {
	id, err := oneID("cancel", args)
	if err != nil {
		return err
	}
	if err := a.saved(ctx, a.session.CancelHang(ctx, id)); err != nil {
		return err
	}
	a.println("cancelled", id)
	return nil
}

func (a *App) complete(ctx context.Context, args []string) error {
	id, err := oneID("complete", args)
	if err != nil {
		return err
	}
	if err := a.saved(ctx, a.session.CompleteHang(ctx, id)); err != nil {
		return err
	}
	a.println("completed", id)
	return nil
}

func (a *App) rsvp(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageErr("rsvp <hang-id> going|maybe|not-going")
	}
	if err := a.saved(ctx, a.session.SetRSVP(ctx, args[0], args[1])); err != nil {
		return err
	}
	a.println("rsvp", args[1], args[0])
	return nil
}

func (a *App) suggest(ctx context.Context, args []string) error {
	fs := newFlagSet("suggest")
	typ := fs.String("type", "", "suggestion type")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) < 2 {
		return usageErr("suggest <hang-id> [-type t] <text>")
	}
	if err := a.saved(ctx, a.session.AddSuggestion(ctx, pos[0], *typ, strings.Join(pos[1:], " "))); err != nil {
		return err
	}
	a.println("suggested on", pos[0])
	return nil
}

func (a *App) vote(ctx context.Context, args []string) error {
	id, err := oneID("vote", args)
	if err != nil {
		return err
	}
	if err := a.saved(ctx, a.session.VoteSuggestion(ctx, id)); err != nil {
		return err
	}
	a.println("voted", id)
	return nil
}

func (a *App) share(ctx context.Context, args []string) error {
	id, err := oneID("share", args)
	if err != nil {
		return err
	}
	p, err := a.client.ShareHang(ctx, id)
	if err != nil {
		return err
	}
	a.println(p.Text)
	return nil
}

func (a *App) stats(ctx context.Context, args []string) error {
	st, err := a.client.GetStats(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(st)
}
