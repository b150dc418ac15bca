// Package browser hides the browser automation library behind a small Page
// interface so suites run unchanged on every driver.
//
// # Drivers
//
//	┌──────────────┬───────────────────────┬───────┬────────────┬─────────────┐
//	│ Driver       │ Library               │ Video │ Screenshot │ JS timings  │
//	├──────────────┼───────────────────────┼───────┼────────────┼─────────────┤
//	│ "playwright" │ playwright-go         │ yes   │ yes        │ yes         │
//	│ "rod"        │ go-rod (CDP)          │ no    │ yes        │ yes         │
//	│ "http"       │ net/http + x/net/html │ no    │ no         │ httptrace   │
//	└──────────────┴───────────────────────┴───────┴────────────┴─────────────┘
//
// Unsupported features return errors wrapping errors.ErrUnsupported from
// pkg/errors; callers skip the affected assertion.
//
// # Lifecycle
//
//	Open(ctx, cfg.Browser)        → Driver (launch retried with backoff)
//	    └── NewPage(ctx, opts)    → Page, one per instance
//	            ├── Goto(ctx, url) → main document status code
//	            └── Close()        → flushes the video (playwright)
//	Driver.Close()
//
// Goto never turns a failing status into an error, which lets pkg/visitor
// retry on it. Uncaught page exceptions go to PageOptions.OnPageError and
// never fail a test.
package browser
