// Command invoicesearch feeds search terms from stdin into a debounced search
// box and prints the invoices a running dashboard server returns for them.
//
//	invoicesearch --server http://localhost:8080 --token $SESSION
//
// Each input line replaces the current term, as if typed into the field.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"invoice-dashboard-backend/internal/search"
	"invoice-dashboard-backend/pkg/logging"
)

type options struct {
	Server string        `mapstructure:"server"`
	Token  string        `mapstructure:"token"`
	Start  string        `mapstructure:"start"`
	Delay  time.Duration `mapstructure:"delay"`
}

func loadOptions(args []string) (options, error) {
	fs := pflag.NewFlagSet("invoicesearch", pflag.ContinueOnError)
	fs.String("server", "http://localhost:8080", "dashboard server base URL")
	fs.String("token", "", "session token (INVOICESEARCH_TOKEN)")
	fs.String("start", "/dashboard/invoices", "listing location to start from")
	fs.Duration("delay", search.DefaultDelay, "quiet period before a term is committed")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("invoicesearch")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return options{}, err
	}
	var opts options
	if err := v.Unmarshal(&opts); err != nil {
		return options{}, err
	}
	return opts, nil
}

type listing struct {
	Invoices []struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Amount int64  `json:"amount"`
		Date   string `json:"date"`
		Status string `json:"status"`
	} `json:"invoices"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
}

// httpNavigator fetches each committed location from the server.
type httpNavigator struct {
	client *http.Client
	base   *url.URL
	token  string
	out    io.Writer
	logger *slog.Logger
}

func (n *httpNavigator) Replace(target string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	l, err := n.fetch(ctx, target)
	if err != nil {
		n.logger.Error("Search failed", "target", target, "error", err)
		return
	}
	n.print(target, l)
}

func (n *httpNavigator) fetch(ctx context.Context, target string) (*listing, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &l, nil
}

func (n *httpNavigator) print(target string, l *listing) {
	fmt.Fprintf(n.out, "%s (page %d of %d)\n", target, l.Page, l.TotalPages)
	tw := tabwriter.NewWriter(n.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CUSTOMER\tEMAIL\tAMOUNT\tDATE\tSTATUS")
	for _, inv := range l.Invoices {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", inv.Name, inv.Email, float64(inv.Amount)/100, inv.Date, inv.Status)
	}
	tw.Flush()
}

func run(args []string, in io.Reader, out io.Writer, logger *slog.Logger) error {
	opts, err := loadOptions(args)
	if err != nil {
		return err
	}
	base, err := url.Parse(opts.Server)
	if err != nil {
		return fmt.Errorf("invalid server url: %w", err)
	}
	start, err := url.Parse(opts.Start)
	if err != nil {
		return fmt.Errorf("invalid start location: %w", err)
	}

	nav := &httpNavigator{
		client: &http.Client{},
		base:   base,
		token:  opts.Token,
		out:    out,
		logger: logger,
	}
	box := search.NewBox(start, nav, search.WithDelay(opts.Delay))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		box.Type(strings.TrimSpace(scanner.Text()))
	}
	box.Flush()
	box.Stop()
	return scanner.Err()
}

func main() {
	logger := logging.Setup(os.Getenv("LOG_LEVEL"))
	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("invoicesearch failed", "error", err)
		os.Exit(1)
	}
}
