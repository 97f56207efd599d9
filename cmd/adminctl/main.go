package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/karyakarta/karyakarta-api/internal/adminclient"
	"github.com/karyakarta/karyakarta-api/internal/controller"
	"github.com/karyakarta/karyakarta-api/internal/pkg/httpclient"
)

const usage = `adminctl drives the KaryaKarta admin API from the terminal.

Usage:
  adminctl [flags] providers list
  adminctl [flags] payouts list
  adminctl [flags] payouts complete <id> [<id>...]
  adminctl [flags] payouts delete <id>
  adminctl [flags] payouts export
  adminctl [flags] summary

Flags:
  -base     server base URL (default http://localhost:8080)
  -session  admin session token, sent as the session cookie
  -status   narrow list output by status
  -q        narrow list output by free-text query
  -timeout  per-request timeout (default 15s)
`

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	sessionToken := flag.String("session", os.Getenv("KK_ADMIN_SESSION"), "admin session token")
	status := flag.String("status", "", "status filter")
	query := flag.String("q", "", "free-text filter")
	timeout := flag.Duration("timeout", 15*time.Second, "per-request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	state := httpclient.NewNetState()
	hc := httpclient.New(state, *timeout)
	if *sessionToken != "" {
		hc.SetHeader("Cookie", "kk_admin_session="+*sessionToken)
	}
	api := adminclient.New(hc, *base)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	filter := controller.Filter{Query: *query, Status: *status}

	var err error
	switch args[0] {
	case "providers":
		err = runProviders(ctx, api, args[1:], filter)
	case "payouts":
		err = runPayouts(ctx, api, args[1:], filter)
	case "summary":
		err = runSummary(ctx, api)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runProviders(ctx context.Context, api *adminclient.Client, args []string, filter controller.Filter) error {
	if len(args) == 0 || args[0] != "list" {
		return fmt.Errorf("unknown providers command, want: list")
	}

	ctrl := controller.New(controller.Config[adminclient.Provider]{
		Client: adminclient.NewProviderClient(api),
	})
	defer ctrl.Close()

	ctrl.SetFilter(filter)
	if err := ctrl.Refresh(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCITY\tSTATUS\tRATING\tCREATED")
	for _, p := range ctrl.Visible() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
			p.ID, p.Name, p.Category, p.City, p.StatusValue(), p.Rating, p.CreatedAt)
	}
	return w.Flush()
}

func runPayouts(ctx context.Context, api *adminclient.Client, args []string, filter controller.Filter) error {
	if len(args) == 0 {
		return fmt.Errorf("payouts command required: list, complete, delete, export")
	}

	client := adminclient.NewPayoutClient(api)
	ctrl := controller.New(controller.Config[adminclient.Payout]{Client: client})
	defer ctrl.Close()

	switch args[0] {
	case "list":
		ctrl.SetFilter(filter)
		if err := ctrl.Refresh(ctx); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROVIDER\tAMOUNT\tCURRENCY\tSTATUS\tUPDATED")
		for _, p := range ctrl.Visible() {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
				p.ID, p.ProviderID, p.Amount, p.Currency, p.Status, p.UpdatedAt)
		}
		return w.Flush()

	case "complete":
		if len(args) < 2 {
			return fmt.Errorf("complete requires at least one payout id")
		}
		if err := ctrl.Refresh(ctx); err != nil {
			return err
		}
		for _, id := range args[1:] {
			ctrl.ToggleSelect(id)
		}
		result, err := ctrl.BulkUpdateStatus(ctx, "completed")
		if err != nil {
			return err
		}
		fmt.Printf("completed %d, failed %d\n", result.Succeeded, result.Failed)
		for id, msg := range result.Errors {
			fmt.Printf("  %s: %s\n", id, msg)
		}
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("delete requires exactly one payout id")
		}
		ctrl.RequestRemove(args[1])
		return ctrl.ConfirmRemove(ctx)

	case "export":
		result, err := client.Export(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d payouts to %s\n", result.Count, result.URL)
		return nil

	default:
		return fmt.Errorf("unknown payouts command %q", args[0])
	}
}

func runSummary(ctx context.Context, api *adminclient.Client) error {
	raw, err := api.GetItem(ctx, "/api/admin/dashboard/summary")
	if err != nil {
		return err
	}
	var pretty map[string]interface{}
	if err := json.Unmarshal(raw, &pretty); err != nil {
		return err
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
