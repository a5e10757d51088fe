// Package freedomclient is the primary entry point for constructing a client
// of the ATLAS Freedom API that implements the freedom.API interface.
//
// It layers configuration, HTTP transport, authentication and caching on top
// of the resource interfaces and types defined in the freedom package. Most
// applications import freedomclient to build a client, then use the returned
// freedom.API to reach the resource clients, for example Satellites(),
// TaskRequests() or Sites().
//
// Quick start
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
//
//	  // Reads ATLAS_ENV, ATLAS_KEY and ATLAS_SECRET.
//	  cli, err := freedomclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or explicitly:
//	  cli, err = freedomclient.New(&freedom.Config{
//	    Environment: freedom.EnvironmentProd,
//	    Key:         "key",
//	    Secret:      "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  req, err := cli.TaskRequests().Get(ctx, 42)
//	  if err != nil { log.Fatal(err) }
//
//	  site, err := req.Ref().ResolveSite(ctx, cli)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(site.Ref().Name)
//	}
//
// # Backends
//
// New always returns the direct client. NewCaching returns a client that
// keeps fetch-by-id results in memory (and optionally in a NATS KV bucket,
// see freedom.CacheConfig). NewDefault and NewFromEnv return the caching
// client unless the program is built with the nocache tag, in which case the
// caching backend is not linked at all:
//
//	go build -tags nocache ./...
package freedomclient
