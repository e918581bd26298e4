package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"gold-ledger/internal/client"
	"gold-ledger/internal/config"
	"gold-ledger/internal/console"
	"gold-ledger/internal/dashboard"
	"gold-ledger/internal/dto"
	"gold-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const usage = `usage: console [-metrics] <command> [flags]

commands:
  register            create an admin account (-name -email -password)
  whoami              show the signed-in admin
  transactions        list transactions (-page -size -search -type -payment -from -to)
  stores              list stores (-page -size)
  customers           list customers (-page -size)
  dashboard           show gold and cash movement for today, this week and this month
  create-customer     add a customer (-name -phone -address)
  create-store        open a store (-name -gold -cash)
  create-transaction  record a buy or sell (-customer -store -type -payment -weight -price -description)

-metrics prints the console's counters once the command finishes.
CONSOLE_EMAIL and CONSOLE_PASSWORD are used to sign in; API_BASE_URL selects the API.
`

var errUsage = errors.New("see usage")

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is what every signed-in command works with
type app struct {
	api      *client.Client
	session  console.Session
	nav      console.Navigator
	pageSize int
	opts     []console.Option
	out      io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"whoami":             whoami,
	"transactions":       listTransactions,
	"stores":             listStores,
	"customers":          listCustomers,
	"dashboard":          showDashboard,
	"create-customer":    createCustomer,
	"create-store":       createStore,
	"create-transaction": createTransaction,
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, argv []string, out io.Writer) error {
	global := flag.NewFlagSet("console", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	showMetrics := global.Bool("metrics", false, "print console metrics after the command")
	if err := global.Parse(argv); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if global.NArg() == 0 {
		return fmt.Errorf("missing command: %w", errUsage)
	}
	name, args := global.Arg(0), global.Args()[1:]

	cmd, known := commands[name]
	if !known && name != "register" {
		return fmt.Errorf("unknown command %q: %w", name, errUsage)
	}

	// One trace ID per run, so the API's log lines for this command can be found together.
	traceID := "console-" + uuid.NewString()
	ctx = client.WithTraceID(ctx, traceID)
	logger = logger.With("trace_id", traceID)

	api, err := client.New(cfg.Console.APIBaseURL, cfg.Console.RequestTimeout, logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	opts := []console.Option{
		console.WithLogger(logger),
		console.WithMetrics(console.NewPrometheusMetrics(registry)),
	}
	if *showMetrics {
		defer func() {
			if err := writeMetrics(out, registry); err != nil {
				logger.Warn("Failed to write metrics", "error", err)
			}
		}()
	}

	if name == "register" {
		return register(ctx, api, logger, args, out)
	}

	if cfg.Console.Email == "" || cfg.Console.Password == "" {
		return fmt.Errorf("CONSOLE_EMAIL and CONSOLE_PASSWORD must be set")
	}
	auth, err := api.Login(ctx, cfg.Console.Email, cfg.Console.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer logout(api, logger)

	session := console.NewMemorySession()
	session.SignIn(auth.Admin)

	return cmd(ctx, &app{
		api:     api,
		session: session,
		nav: console.NavigatorFunc(func() {
			fmt.Fprintln(out, "session ended, sign in again")
		}),
		pageSize: cfg.Console.PageSize,
		opts:     opts,
		out:      out,
	}, args)
}

func logout(api *client.Client, logger *slog.Logger) {
	if err := api.Logout(context.Background()); err != nil {
		logger.Warn("Logout failed", "error", err)
	}
}

func register(ctx context.Context, api *client.Client, logger *slog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "sign-in email")
	password := fs.String("password", "", "at least 8 characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := api.Register(ctx, dto.RegisterRequest{
		Name:     strings.TrimSpace(*name),
		Email:    strings.TrimSpace(*email),
		Password: *password,
	})
	if err != nil {
		return err
	}
	// registering signs in; this command only creates the account
	logout(api, logger)

	fmt.Fprintf(out, "registered %s <%s> (%s)\n", auth.Admin.Name, auth.Admin.Email, auth.Admin.ID)
	return nil
}

func whoami(ctx context.Context, a *app, _ []string) error {
	admin, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>, admin since %s\n", admin.Name, admin.Email, admin.CreatedAt.Format(models.FilterDateLayout))
	return nil
}

func listTransactions(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ContinueOnError)
	page := fs.Int("page", 0, "zero-based page")
	size := fs.Int("size", a.pageSize, "page size")
	search := fs.String("search", "", "match customer name or description")
	txType := fs.String("type", "", "buy or sell")
	payment := fs.String("payment", "", "cash, upi, borrowed_gold or borrowed_money")
	from := fs.String("from", "", "first day, YYYY-MM-DD")
	to := fs.String("to", "", "last day, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := models.FilterState{SearchTerm: strings.TrimSpace(*search)}
	if *txType != "" {
		filters.Type = models.TransactionType(*txType).Ptr()
	}
	if *payment != "" {
		filters.PaymentMethod = models.PaymentMethod(*payment).Ptr()
	}
	var err error
	if filters.DateRange.Start, err = parseDay(*from); err != nil {
		return err
	}
	if filters.DateRange.End, err = parseDay(*to); err != nil {
		return err
	}

	list := console.NewTransactionList(a.api, a.session, a.nav, *size, a.opts...)
	if err := list.Update(ctx, func(s *models.FilterState) { *s = filters }); err != nil {
		return err
	}
	if err := list.SetPage(ctx, *page); err != nil {
		return err
	}

	view := list.View()
	if view.Failure != nil {
		return view.Failure
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTORE\tTYPE\tPAYMENT\tGOLD\tPRICE\tAMOUNT")
	for _, t := range view.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s g\t%s\t%s\n",
			t.ID, t.CreatedAt.Format(models.FilterDateLayout), t.StoreName, t.Type, t.PaymentMethod,
			t.GoldWeight.StringFixed(3), t.GoldPrice.StringFixed(2), t.Amount.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPager(a.out, view.Page.Page, view.TotalPages, view.TotalCount, view.PageWindow)
	return nil
}

func listStores(ctx context.Context, a *app, args []string) error {
	return listEntities(ctx, a, "stores", a.api.ListStores, args, "ID\tSTORE\tGOLD\tCASH", func(w io.Writer, s models.Store) {
		fmt.Fprintf(w, "%d\t%s\t%s g\t%s\n", s.ID, s.Name, s.TotalGold.StringFixed(3), s.TotalAmount.StringFixed(2))
	})
}

func listCustomers(ctx context.Context, a *app, args []string) error {
	return listEntities(ctx, a, "customers", a.api.ListCustomers, args, "ID\tNAME\tPHONE\tGOLD OWED\tCASH OWED", func(w io.Writer, c models.Customer) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s g\t%s\n", c.ID, c.Name, c.Phone, c.BorrowedGold.StringFixed(3), c.BorrowedAmount.StringFixed(2))
	})
}

func listEntities[T any](ctx context.Context, a *app, name string, load console.PageLoader[T], args []string, header string, row func(io.Writer, T)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	page := fs.Int("page", 0, "zero-based page")
	size := fs.Int("size", a.pageSize, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := console.NewEntityList[T](name, load, a.session, a.nav, *size, a.opts...)
	var err error
	if *page > 0 {
		err = list.SetPage(ctx, *page)
	} else {
		err = list.Load(ctx)
	}
	if err != nil {
		return err
	}

	view := list.View()
	if view.Failure != nil {
		return view.Failure
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	for _, item := range view.Items {
		row(w, item)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPager(a.out, view.Page.Page, view.TotalPages, view.TotalCount, view.PageWindow)
	return nil
}

func showDashboard(ctx context.Context, a *app, _ []string) error {
	view := console.NewDashboardView(a.api, a.session, a.nav, a.opts...)
	printDashboard(a.out, view.Load(ctx))
	return nil
}

func createCustomer(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-customer", flag.ContinueOnError)
	name := fs.String("name", "", "customer name")
	phone := fs.String("phone", "", "10 to 15 digits, optional leading +")
	address := fs.String("address", "", "postal address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	customer, err := a.api.CreateCustomer(ctx, dto.CreateCustomerRequest{
		Name:    strings.TrimSpace(*name),
		Phone:   strings.TrimSpace(*phone),
		Address: strings.TrimSpace(*address),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "customer %d %s added\n", customer.ID, customer.Name)
	return nil
}

func createStore(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-store", flag.ContinueOnError)
	name := fs.String("name", "", "store name, unique")
	gold := fs.String("gold", "0", "opening gold in grams")
	cash := fs.String("cash", "0", "opening cash")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := a.api.CreateStore(ctx, dto.CreateStoreRequest{
		Name:        strings.TrimSpace(*name),
		TotalGold:   *gold,
		TotalAmount: *cash,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "store %d %s opened with %s g and %s cash\n",
		store.ID, store.Name, store.TotalGold.StringFixed(3), store.TotalAmount.StringFixed(2))
	return nil
}

func createTransaction(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-transaction", flag.ContinueOnError)
	customerID := fs.Uint("customer", 0, "customer ID")
	store := fs.String("store", "", "store name")
	txType := fs.String("type", "", "buy or sell")
	payment := fs.String("payment", "", "cash, upi, borrowed_gold or borrowed_money")
	weight := fs.String("weight", "", "gold weight in grams")
	price := fs.String("price", "", "price per gram")
	description := fs.String("description", "", "free text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tx, err := a.api.CreateTransaction(ctx, dto.CreateTransactionRequest{
		CustomerID:    *customerID,
		StoreName:     strings.TrimSpace(*store),
		Type:          *txType,
		PaymentMethod: *payment,
		GoldWeight:    *weight,
		GoldPrice:     *price,
		Description:   strings.TrimSpace(*description),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "transaction %d: %s %s g at %s by %s = %s (%s)\n",
		tx.ID, tx.Type, tx.GoldWeight.StringFixed(3), tx.GoldPrice.StringFixed(2), tx.PaymentMethod,
		tx.Amount.StringFixed(2), tx.StoreName)
	return nil
}

func printPager(out io.Writer, page, totalPages int, totalCount int64, window []int) {
	buttons := make([]string, 0, len(window))
	for _, p := range window {
		if p == page {
			buttons = append(buttons, fmt.Sprintf("[%d]", p+1))
			continue
		}
		buttons = append(buttons, fmt.Sprintf("%d", p+1))
	}
	fmt.Fprintf(out, "\npage %d of %d (%d rows)  %s\n", page+1, totalPages, totalCount, strings.Join(buttons, " "))
}

func printDashboard(out io.Writer, d *dashboard.Dashboard) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WINDOW\tGOLD TAKEN\tGOLD GIVEN\tGOLD TOTAL\tCASH TAKEN\tCASH GIVEN\tCASH TOTAL")
	for i, gold := range d.GoldSeries {
		cash := d.AmountSeries[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", gold.Label,
			gold.Taken.StringFixed(3), gold.Given.StringFixed(3), gold.Total.StringFixed(3),
			cash.Taken.StringFixed(2), cash.Given.StringFixed(2), cash.Total.StringFixed(2))
	}
	_ = w.Flush()

	for _, window := range dashboard.Windows {
		if err, failed := d.Failures[window.Label]; failed {
			fmt.Fprintf(out, "%s unavailable: %v\n", window.Label, err)
		}
	}
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}

func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := time.Parse(models.FilterDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return &day, nil
}
