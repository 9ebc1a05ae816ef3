// Package discourseclient builds a discourse.Client from a discourse.Config.
//
// It validates the configuration, turns the host name into a base URL and
// wires the HTTP transport and credentials behind the resource clients
// defined in the discourse package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/discourse/pkg/discourse"
//	  "github.com/fivetwenty-io/discourse/pkg/discourseclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := discourseclient.New(&discourse.Config{
//	    Host:        "forum.example.com",
//	    APIKey:      "0123456789abcdef",
//	    APIUsername: "system",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  result, err := cli.Users().LookupIDByUsername(ctx, "johndoe")
//	  if err != nil { log.Fatal(err) } // transport or unexpected response
//	  if !result.Success { log.Println(result.Errors) } // refused by the forum
//	}
//
// # Hosts and schemes
//
// Requests go to https://<Host> unless Config.InsecureHTTP is set. A Host
// that already starts with http:// or https:// is used as given, which is
// convenient for local forums and tests.
//
// # Helpers
//
// NewWithKey is a shorthand for the common host, key and username case.
package discourseclient
