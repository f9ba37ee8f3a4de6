// Package epclient provides the primary entry point for constructing EasyPost
// API clients that implement the easypost.Client, easypost.V2Client and
// easypost.BetaClient interfaces.
//
// It layers configuration defaults, validation and HTTP transport on top of the
// resource interfaces and types defined in the easypost package. Each client is
// bound to one API version for its whole life.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/easypost-go/pkg/easypost"
//	  "github.com/fivetwenty-io/easypost-go/pkg/epclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := epclient.New(&easypost.Config{APIKey: os.Getenv("EASYPOST_API_KEY")})
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Shipments().All(ctx, easypost.NewListParams().WithPageSize(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//
//	  // Legacy surface, e.g. orders and credit cards:
//	  legacy, err := epclient.NewV2(&easypost.Config{APIKey: os.Getenv("EASYPOST_API_KEY")})
//	  if err != nil { log.Fatal(err) }
//	  _ = legacy.Orders()
//	}
//
// # Hosts
//
// BaseURL may omit the scheme, in which case https is assumed. The version path
// prefix (/v2 or /beta) is appended by the client; use Config.VersionURLs to send
// one version to a different host.
//
// # Helpers
//
// NewWithAPIKey and NewFromEnv wrap New for the common cases.
package epclient
