// Package crawl provides EUR-Lex crawling orchestration.
// It walks search-result listings, follows each document's tab pages,
// merges the extracted fragments per document and emits one record per
// document to a writer.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/lexcrawl"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Crawler orchestrates a crawl of the portal.
//
// Fetcher, Parser, Extractor and Documents are required. Sitemaps,
// RateLimiter and Robots are optional. A zero MaxPages or MaxDocuments
// means no limit.
type Crawler struct {
	Fetcher     lexcrawl.Fetcher
	Parser      lexcrawl.PageParser
	Extractor   lexcrawl.MetadataExtractor
	Documents   lexcrawl.DocumentWriter
	Sitemaps    lexcrawl.SitemapService
	RateLimiter lexcrawl.DomainLimiter
	Robots      lexcrawl.RobotsPolicy

	Concurrency  int
	RetryDelays  []time.Duration
	MaxPages     int
	MaxDocuments int

	// Now returns the emission timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a crawl.
type Result struct {
	// Pages is the number of listing pages dispatched.
	Pages int
	// Documents is the number of document pages dispatched.
	Documents int
	// Declined counts document requests refused by MaxDocuments.
	Declined int
	Emitted  int
	Failed   int
	// Blocked counts requests refused by the robots policy.
	Blocked int
	// Incomplete lists the keys of documents whose tabs never all arrived.
	Incomplete []string
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type  ProgressType
	Kind  Kind
	URL   string
	CELEX string
	// Bytes is the body size of a fetched page.
	Bytes int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetched ProgressType = iota
	ProgressFailed
	ProgressBlocked
	ProgressDeclined
	ProgressEmitted
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress. It is always
// called from the goroutine running Run.
type ProgressFunc func(event ProgressEvent)

// fetchResult holds the outcome of fetching a single request.
type fetchResult struct {
	req     Request
	resp    *lexcrawl.Response
	blocked bool
	err     error
}

// run holds the state of one Run call. It is owned by the coordinator.
type run struct {
	c        *Crawler
	frontier *Frontier
	acc      *Accumulator
	result   Result
	progress ProgressFunc
}

// Run crawls from the given listing URLs. When Sitemaps is set, document
// URLs found in the sitemaps of each start URL's site are queued as well.
//
// Fetch, parse and write failures are counted and reported through
// progress; they do not stop the crawl. Run returns the context error if
// ctx is canceled, together with the partial result.
func (c *Crawler) Run(ctx context.Context, startURLs []string, progress ProgressFunc) (*Result, error) {
	if len(startURLs) == 0 {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "at least one start URL required")
	}

	r := &run{
		c:        c,
		frontier: NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		acc:      NewAccumulator(),
		progress: progress,
	}

	for _, u := range startURLs {
		r.frontier.Push(Request{Kind: KindListing, URL: u})
	}
	if c.Sitemaps != nil {
		if err := r.seedFromSitemaps(ctx, startURLs); err != nil {
			return nil, err
		}
	}

	err := r.walk(ctx)

	r.result.Incomplete = r.acc.Pending()
	r.report(ProgressEvent{Type: ProgressFinished})
	return &r.result, err
}

func (r *run) seedFromSitemaps(ctx context.Context, startURLs []string) error {
	sites := make(map[string]bool)
	for _, u := range startURLs {
		parsed, err := url.Parse(u)
		if err != nil || parsed.Host == "" {
			return lexcrawl.Errorf(lexcrawl.EINVALID, "invalid start URL %q", u)
		}
		base := parsed.Scheme + "://" + parsed.Host
		if sites[base] {
			continue
		}
		sites[base] = true

		urls, err := r.c.Sitemaps.DiscoverURLs(ctx, base, lexcrawl.DocumentURLFilter())
		if err != nil {
			return lexcrawl.Errorf(lexcrawl.EFETCH, "sitemap discovery for %s: %v", base, err)
		}
		for _, docURL := range urls {
			r.frontier.Push(Request{Kind: KindDocument, URL: docURL})
		}
	}
	return nil
}

// walk runs the worker pool and the coordinator loop until the frontier is
// drained or ctx is canceled.
func (r *run) walk(ctx context.Context) error {
	concurrency := r.c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	workCh := make(chan Request, concurrency)
	resultCh := make(chan fetchResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for req := range workCh {
				res := r.c.fetch(gctx, req)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	pending := 0
	next, ok := r.next()

coordinatorLoop:
	for ok || pending > 0 {
		if ctx.Err() != nil {
			break
		}

		if ok {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- next:
				pending++
				next, ok = r.next()
			case res := <-resultCh:
				pending--
				r.handle(ctx, res)
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res := <-resultCh:
				pending--
				r.handle(ctx, res)
			}
		}

		if !ok {
			next, ok = r.next()
		}
	}

	close(workCh)
	for res := range resultCh {
		if ctx.Err() == nil {
			r.handle(ctx, res)
		}
	}
	return ctx.Err()
}

// next pops the next request that may be dispatched, applying the page and
// document caps. Declined document requests are counted and reported.
func (r *run) next() (Request, bool) {
	for {
		req, ok := r.frontier.Pop()
		if !ok {
			return Request{}, false
		}
		switch req.Kind {
		case KindListing:
			if r.c.MaxPages > 0 && r.result.Pages >= r.c.MaxPages {
				continue
			}
			r.result.Pages++
		case KindDocument:
			if r.c.MaxDocuments > 0 && r.result.Documents >= r.c.MaxDocuments {
				r.result.Declined++
				r.report(ProgressEvent{Type: ProgressDeclined, Kind: req.Kind, URL: req.URL})
				continue
			}
			r.result.Documents++
		}
		return req, true
	}
}

// fetch runs on a worker goroutine.
func (c *Crawler) fetch(ctx context.Context, req Request) fetchResult {
	res := fetchResult{req: req}

	if c.Robots != nil && !c.Robots.Allowed(ctx, req.URL) {
		res.blocked = true
		return res
	}

	if c.RateLimiter != nil {
		u, err := url.Parse(req.URL)
		if err != nil {
			res.err = lexcrawl.Errorf(lexcrawl.EINVALID, "invalid URL %q", req.URL)
			return res
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			res.err = err
			return res
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	res.resp, res.err = FetchWithRetryDelays(ctx, req.URL, c.Fetcher.Fetch, delays)
	return res
}

// handle processes a fetched page on the coordinator goroutine.
func (r *run) handle(ctx context.Context, res fetchResult) {
	req := res.req
	switch {
	case res.blocked:
		r.result.Blocked++
		r.report(ProgressEvent{Type: ProgressBlocked, Kind: req.Kind, URL: req.URL, CELEX: req.CELEX})
		return
	case res.err != nil:
		r.fail(req, res.err)
		return
	}

	r.report(ProgressEvent{Type: ProgressFetched, Kind: req.Kind, URL: req.URL, CELEX: req.CELEX, Bytes: len(res.resp.Body)})

	var err error
	switch req.Kind {
	case KindListing:
		err = r.handleListing(res.resp)
	case KindDocument:
		err = r.handleDocument(ctx, req, res.resp)
	case KindTab:
		err = r.handleTab(ctx, req, res.resp)
	}
	if err != nil {
		r.fail(req, err)
	}
}

func (r *run) handleListing(resp *lexcrawl.Response) error {
	page, err := r.c.Parser.ParseListing(resp.Body, resp.URL)
	if err != nil {
		return err
	}
	for _, docURL := range page.DocumentURLs {
		r.frontier.Push(Request{Kind: KindDocument, URL: docURL})
	}
	if page.NextURL != "" {
		r.frontier.Push(Request{Kind: KindListing, URL: page.NextURL})
	}
	return nil
}

func (r *run) handleDocument(ctx context.Context, req Request, resp *lexcrawl.Response) error {
	page, err := r.c.Parser.ParseDocument(resp.Body, resp.URL)
	if err != nil {
		return err
	}

	celex, ok := CELEXFromResponse(req, resp)
	key := celex
	main := lexcrawl.Fragment{
		lexcrawl.FieldURL:   resp.URL,
		lexcrawl.FieldCELEX: nil,
		lexcrawl.FieldTitle: nil,
	}
	if ok {
		main[lexcrawl.FieldCELEX] = celex
	} else {
		key = resp.URL
	}
	if page.Title != nil {
		main[lexcrawl.FieldTitle] = *page.Title
	}

	var tabs []lexcrawl.Tab
	links := make(map[lexcrawl.Tab]string)
	for _, link := range page.Tabs {
		if !r.c.Extractor.Supports(link.Tab) {
			continue
		}
		if _, dup := links[link.Tab]; dup {
			continue
		}
		links[link.Tab] = link.URL
		tabs = append(tabs, link.Tab)
	}

	record, complete, err := r.acc.Seed(key, main, tabs)
	if err != nil {
		return err
	}
	if complete {
		return r.emit(ctx, key, record)
	}
	for _, tab := range tabs {
		r.frontier.Push(Request{Kind: KindTab, URL: links[tab], CELEX: key, Tab: tab})
	}
	return nil
}

func (r *run) handleTab(ctx context.Context, req Request, resp *lexcrawl.Response) error {
	fragment, err := r.c.Extractor.Extract(resp.Body, req.Tab)
	if err != nil {
		return err
	}
	record, complete, err := r.acc.Add(req.CELEX, req.Tab, fragment)
	if err != nil {
		return err
	}
	if complete {
		return r.emit(ctx, req.CELEX, record)
	}
	return nil
}

func (r *run) emit(ctx context.Context, key string, record lexcrawl.Fragment) error {
	doc := lexcrawl.NewDocument(record)
	hash, err := ComputeHash(record)
	if err != nil {
		return err
	}
	doc.FieldsHash = hash
	doc.FetchedAt = r.c.now()

	if err := r.c.Documents.CreateDocument(ctx, doc); err != nil {
		return err
	}
	r.result.Emitted++
	r.report(ProgressEvent{Type: ProgressEmitted, Kind: KindDocument, URL: doc.SourceURL, CELEX: key})
	return nil
}

func (r *run) fail(req Request, err error) {
	r.result.Failed++
	r.report(ProgressEvent{Type: ProgressFailed, Kind: req.Kind, URL: req.URL, CELEX: req.CELEX, Error: err})
}

func (r *run) report(ev ProgressEvent) {
	if r.progress != nil {
		r.progress(ev)
	}
}

func (c *Crawler) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// CELEXFromResponse returns the CELEX number of a document page, preferring
// the final URL after redirects over the requested one.
func CELEXFromResponse(req Request, resp *lexcrawl.Response) (string, bool) {
	if celex, ok := lexcrawl.CELEXFromURL(resp.URL); ok {
		return celex, true
	}
	return lexcrawl.CELEXFromURL(req.URL)
}
