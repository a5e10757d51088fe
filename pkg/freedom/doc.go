// Package freedom provides types, interfaces, and helpers for working with the
// ATLAS Freedom ground-station scheduling API.
//
// # Overview
//
// The freedom package defines the resource records (Satellite, Site,
// TaskRequest, Band, ...) and the interfaces of the resource clients
// (SatellitesClient, SitesClient, ...). Two backends implement the API
// interface: a direct client that issues one request per call, and a caching
// client that memoizes fetch-by-id results. Both are constructed through the
// freedomclient package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/atlasground/freedom/pkg/freedom"
//	  "github.com/atlasground/freedom/pkg/freedomclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := freedomclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  sat, err := cli.Satellites().Get(ctx, 12)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(sat.Ref().Name)
//	}
//
// # Containers
//
// Every fetch returns a Container. Read through Ref; call IntoInner to obtain
// a value you may modify. Containers returned by the caching client are
// shared with the cache, so IntoInner deep copies them.
//
// # Lists
//
// List operations return a Seq, a lazy sequence that pages through the
// collection as it is ranged over:
//
//	for sat, err := range cli.Satellites().List(ctx, nil) {
//	  if err != nil { break }
//	  fmt.Println(sat.Ref().Name)
//	}
//
// A record that fails to decode is logged and skipped; a failed page request
// is yielded as an error and ends the sequence.
//
// # Links
//
// Resources expose typed relations, resolved through any API:
//
//	site, err := req.Ref().ResolveSite(ctx, cli)
//
// # Errors
//
// Every error wraps one of ErrTransport, ErrNotFound, ErrDecode or
// ErrValidation. Helpers such as IsNotFound make it easy to branch on them.
package freedom
