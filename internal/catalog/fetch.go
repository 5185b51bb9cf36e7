package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultWiki is the community wiki the catalog is exported from.
const DefaultWiki = "https://stowiki.net"

const (
	maxFetchBytes  = 64 << 20
	cargoPageSize  = 500
	maxCargoPages  = 200
	defaultTimeout = 30 * time.Second
)

var wikiHosts = map[string]struct{}{
	"stowiki.net":     {},
	"www.stowiki.net": {},
	"sto.fandom.com":  {},
}

type Progress struct {
	Table           string
	Rows            int
	DownloadedBytes int64
}

type FetchOptions struct {
	Client *http.Client
	// ExtraHosts are allowed in addition to the wiki hosts.
	ExtraHosts []string
	MaxBytes   int64
	OnProgress func(Progress)
}

func (o FetchOptions) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (o FetchOptions) limit() int64 {
	if o.MaxBytes > 0 {
		return o.MaxBytes
	}
	return maxFetchBytes
}

func (o FetchOptions) allowed(host string) bool {
	if _, ok := wikiHosts[host]; ok {
		return true
	}
	for _, h := range o.ExtraHosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

func (o FetchOptions) validate(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if host := strings.ToLower(parsed.Hostname()); !o.allowed(host) {
		return fmt.Errorf("unsupported URL host: %s", host)
	}
	return nil
}

// Fetch downloads one document over HTTPS from an allowed host, refusing
// bodies larger than the configured cap.
func Fetch(ctx context.Context, rawURL string, opts FetchOptions) ([]byte, error) {
	if err := opts.validate(rawURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := opts.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: %s: %s", rawURL, resp.Status, strings.TrimSpace(string(b)))
	}
	limit := opts.limit()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch %s: body exceeded %d bytes", rawURL, limit)
	}
	return data, nil
}

// CargoQuery names a wiki cargo table and the columns the parsers read.
type CargoQuery struct {
	Table  string
	Fields []string
}

var (
	ItemsQuery = CargoQuery{
		Table:  "Infobox",
		Fields: []string{"_pageName=page", "name", "rarity", "type", "text1", "text2", "text3", "text4", "text5", "text6", "text7", "text8", "text9"},
	}
	ModifiersQuery = CargoQuery{
		Table:  "Modifiers",
		Fields: []string{"modifier", "type", "stats", "available", "isepic"},
	}
	ShipsQuery = CargoQuery{
		Table:  "Ships",
		Fields: []string{"_pageName=name", "tier", "type", "fore", "aft", "devices", "hangars", "consolestac", "consoleseng", "consolessci", "uniconsole", "experimental", "secdeflector"},
	}
)

// CargoURL builds a Special:CargoExport request for one page of a table.
func CargoURL(base string, q CargoQuery, limit, offset int) string {
	v := url.Values{}
	v.Set("tables", q.Table)
	v.Set("fields", strings.Join(q.Fields, ","))
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	v.Set("format", "json")
	return strings.TrimRight(base, "/") + "/wiki/Special:CargoExport?" + v.Encode()
}

// fetchCargo pages through a table and returns every row as one JSON array.
func fetchCargo(ctx context.Context, base string, q CargoQuery, opts FetchOptions) ([]byte, error) {
	var (
		rows  []string
		total int64
	)
	for page := 0; page < maxCargoPages; page++ {
		data, err := Fetch(ctx, CargoURL(base, q, cargoPageSize, page*cargoPageSize), opts)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", q.Table, page, err)
		}
		got, err := cargoRows(data)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", q.Table, page, err)
		}
		for _, r := range got {
			rows = append(rows, r.Raw)
		}
		total += int64(len(data))
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Table: q.Table, Rows: len(rows), DownloadedBytes: total})
		}
		if len(got) < cargoPageSize {
			break
		}
	}
	return []byte("[" + strings.Join(rows, ",") + "]"), nil
}

// FetchSnapshot downloads items, modifiers and ships from the wiki and
// builds a snapshot from them.
func FetchSnapshot(ctx context.Context, base string, opts FetchOptions) (*Snapshot, error) {
	if base == "" {
		base = DefaultWiki
	}
	raw, err := fetchCargo(ctx, base, ItemsQuery, opts)
	if err != nil {
		return nil, err
	}
	items, err := ParseCargoItems(raw)
	if err != nil {
		return nil, err
	}
	if raw, err = fetchCargo(ctx, base, ModifiersQuery, opts); err != nil {
		return nil, err
	}
	mods, err := ParseCargoModifiers(raw)
	if err != nil {
		return nil, err
	}
	if raw, err = fetchCargo(ctx, base, ShipsQuery, opts); err != nil {
		return nil, err
	}
	ships, err := ParseCargoShips(raw)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(items, mods, ships), nil
}
