// Command assetdesk is the asset-management client: sign in once, then browse
// the catalog, file and resolve requests, and manage the company from the
// terminal. Screens are role-gated the same way the web dashboards are.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"assetdesk/cli/internal/api"
	"assetdesk/cli/internal/assets"
	"assetdesk/cli/internal/config"
	"assetdesk/cli/internal/guard"
	"assetdesk/cli/internal/guard/engine"
	identitydomain "assetdesk/cli/internal/identity/domain"
	"assetdesk/cli/internal/notices"
	"assetdesk/cli/internal/requests"
	"assetdesk/cli/internal/session"
	"assetdesk/cli/internal/telemetry"
	otelsetup "assetdesk/cli/internal/telemetry/otel"
	"assetdesk/cli/internal/views"
)

const usage = `Usage: assetdesk <command> [flags]

Account:
  login             -email -password
  logout
  register-hr       -name -email -password -company [-logo] [-dob]
  register-employee -name -email -password [-dob]
  profile           [show]
  profile-update    [-name] [-image] [-dob]

Employee:
  catalog           [-search] [-type]
  request           -asset [-note]
  my-assets         [-search] [-type] [-status]
  return            -id
  my-team           [-company]
  notices
  notice-read       -id

HR:
  dashboard
  add-asset         -name -type -quantity [-image]
  edit-asset        -id -name -type -quantity [-image]
  delete-asset      -id
  requests          [-status]
  approve           -id
  reject            -id
  employees
  notice-post       -title [-description] [-priority]
  upgrade           -package
  payment-success   -package -session
  analytics
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, "assetdesk-cli", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		// Only wait for in-flight emits when something is actually exported;
		// an unconfigured workstation exits immediately.
		if providers.Exporting {
			time.Sleep(telemetry.ShutdownDrainDuration)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	client := api.NewClient(cfg.APIBaseURL, nil)

	var store session.TokenStore
	if cfg.NoPersist {
		store = session.NewMemoryStore()
	} else {
		path := cfg.TokenPath
		if path == "" {
			path = session.DefaultTokenPath()
		}
		store = session.NewFileStore(path)
	}

	sess := session.NewService(store, client)

	evaluator, err := engine.NewOPAEvaluator()
	if err != nil {
		log.Fatalf("guard: %v", err)
	}
	g := guard.New(evaluator)

	emitter := otelsetup.NewEventEmitter(providers.LoggerProvider)
	app := views.NewApp(sess, g, client, emitter, os.Stdout, cfg.AssignedPageLimit)

	// Bootstrap resolves the stored credential before any guard decision;
	// no screen may fetch until this settles.
	sess.Bootstrap(ctx)

	if err := run(ctx, command, args, sess, app, emitter); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, sess *session.Service, app *views.App, emitter telemetry.EventEmitter) error {
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		_ = fs.Parse(args)
		res, err := sess.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		telemetry.EmitAsync(emitter, ctx, &telemetry.Event{
			EventType: "login", UserID: res.Identity.ID, Role: string(res.Identity.Role),
			Outcome: "ok", CreatedAt: time.Now().UTC(),
		})
		fmt.Printf("Signed in as %s (%s). Your dashboard: %s\n",
			res.Identity.Name, res.Identity.Role, res.Identity.Role.DashboardPath())
		return nil

	case "logout":
		snap := sess.Snapshot()
		sess.Logout()
		ev := &telemetry.Event{EventType: "logout", Outcome: "ok", CreatedAt: time.Now().UTC()}
		if snap.Identity != nil {
			ev.UserID = snap.Identity.ID
		}
		telemetry.EmitAsync(emitter, ctx, ev)
		fmt.Println("Signed out.")
		return nil

	case "register-hr":
		fs := flag.NewFlagSet("register-hr", flag.ExitOnError)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		company := fs.String("company", "", "company name")
		logo := fs.String("logo", "", "company logo URL")
		dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
		_ = fs.Parse(args)
		reg := session.HRRegistration{
			Name: *name, Email: *email, Password: *password,
			CompanyName: *company, CompanyLogo: *logo, DateOfBirth: *dob,
		}
		if err := sess.RegisterHR(ctx, reg); err != nil {
			return err
		}
		fmt.Println("HR account created. Sign in with: assetdesk login")
		return nil

	case "register-employee":
		fs := flag.NewFlagSet("register-employee", flag.ExitOnError)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
		_ = fs.Parse(args)
		reg := session.EmployeeRegistration{Name: *name, Email: *email, Password: *password, DateOfBirth: *dob}
		if err := sess.RegisterEmployee(ctx, reg); err != nil {
			return err
		}
		fmt.Println("Employee account created. Sign in with: assetdesk login")
		return nil

	case "profile":
		return app.Profile(ctx)

	case "profile-update":
		fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
		name := fs.String("name", "", "new display name")
		image := fs.String("image", "", "new profile image URL")
		dob := fs.String("dob", "", "new date of birth")
		_ = fs.Parse(args)
		var patch identitydomain.Patch
		if *name != "" {
			patch.Name = name
		}
		if *image != "" {
			patch.ProfileImage = image
		}
		if *dob != "" {
			patch.DateOfBirth = dob
		}
		return app.UpdateProfile(ctx, patch)

	case "catalog":
		fs := flag.NewFlagSet("catalog", flag.ExitOnError)
		search := fs.String("search", "", "name search")
		typ := fs.String("type", "", "Returnable or Non-returnable")
		_ = fs.Parse(args)
		return app.RequestAssets(ctx, *search, assets.ProductType(*typ))

	case "request":
		fs := flag.NewFlagSet("request", flag.ExitOnError)
		asset := fs.String("asset", "", "asset id")
		note := fs.String("note", "", "note for HR")
		_ = fs.Parse(args)
		return app.RequestAsset(ctx, *asset, *note)

	case "my-assets":
		fs := flag.NewFlagSet("my-assets", flag.ExitOnError)
		search := fs.String("search", "", "name search")
		typ := fs.String("type", "", "Returnable or Non-returnable")
		status := fs.String("status", "", "assigned or returned")
		_ = fs.Parse(args)
		return app.MyAssets(ctx, *search, *typ, *status)

	case "return":
		fs := flag.NewFlagSet("return", flag.ExitOnError)
		id := fs.String("id", "", "assignment id")
		_ = fs.Parse(args)
		return app.ReturnAsset(ctx, *id)

	case "my-team":
		fs := flag.NewFlagSet("my-team", flag.ExitOnError)
		company := fs.String("company", "", "company name (defaults to first affiliation)")
		_ = fs.Parse(args)
		return app.MyTeam(ctx, *company)

	case "notices":
		return app.NoticeBoard(ctx)

	case "notice-read":
		fs := flag.NewFlagSet("notice-read", flag.ExitOnError)
		id := fs.String("id", "", "notice id")
		_ = fs.Parse(args)
		return app.MarkNoticeRead(ctx, *id)

	case "dashboard":
		return app.AssetList(ctx)

	case "add-asset":
		fs := flag.NewFlagSet("add-asset", flag.ExitOnError)
		name := fs.String("name", "", "product name")
		typ := fs.String("type", string(assets.TypeReturnable), "Returnable or Non-returnable")
		quantity := fs.Int("quantity", 1, "stock quantity")
		image := fs.String("image", "", "product image URL")
		_ = fs.Parse(args)
		return app.AddAsset(ctx, assets.NewAsset{
			ProductName: *name, ProductType: assets.ProductType(*typ),
			ProductQuantity: *quantity, ProductImage: *image,
		})

	case "edit-asset":
		fs := flag.NewFlagSet("edit-asset", flag.ExitOnError)
		id := fs.String("id", "", "asset id")
		name := fs.String("name", "", "product name")
		typ := fs.String("type", string(assets.TypeReturnable), "Returnable or Non-returnable")
		quantity := fs.Int("quantity", 1, "stock quantity")
		image := fs.String("image", "", "product image URL")
		_ = fs.Parse(args)
		return app.EditAsset(ctx, *id, assets.NewAsset{
			ProductName: *name, ProductType: assets.ProductType(*typ),
			ProductQuantity: *quantity, ProductImage: *image,
		})

	case "delete-asset":
		fs := flag.NewFlagSet("delete-asset", flag.ExitOnError)
		id := fs.String("id", "", "asset id")
		_ = fs.Parse(args)
		return app.DeleteAsset(ctx, *id)

	case "requests":
		fs := flag.NewFlagSet("requests", flag.ExitOnError)
		status := fs.String("status", "", "pending, approved, or rejected")
		_ = fs.Parse(args)
		return app.AllRequests(ctx, requests.Status(*status))

	case "approve":
		fs := flag.NewFlagSet("approve", flag.ExitOnError)
		id := fs.String("id", "", "request id")
		_ = fs.Parse(args)
		return app.ApproveRequest(ctx, *id)

	case "reject":
		fs := flag.NewFlagSet("reject", flag.ExitOnError)
		id := fs.String("id", "", "request id")
		_ = fs.Parse(args)
		return app.RejectRequest(ctx, *id)

	case "employees":
		return app.EmployeeList(ctx)

	case "notice-post":
		fs := flag.NewFlagSet("notice-post", flag.ExitOnError)
		title := fs.String("title", "", "notice title")
		description := fs.String("description", "", "notice body")
		priority := fs.String("priority", string(notices.PriorityLow), "low, medium, or high")
		_ = fs.Parse(args)
		return app.PostNotice(ctx, notices.NewNotice{
			Title: *title, Description: *description, Priority: notices.Priority(*priority),
		})

	case "upgrade":
		fs := flag.NewFlagSet("upgrade", flag.ExitOnError)
		pkg := fs.String("package", "", "basic, standard, or premium")
		_ = fs.Parse(args)
		return app.Upgrade(ctx, *pkg)

	case "payment-success":
		fs := flag.NewFlagSet("payment-success", flag.ExitOnError)
		pkg := fs.String("package", "", "basic, standard, or premium")
		sessionID := fs.String("session", "", "checkout session id")
		_ = fs.Parse(args)
		return app.PaymentSuccess(ctx, *pkg, *sessionID)

	case "analytics":
		return app.AnalyticsScreen(ctx)

	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
