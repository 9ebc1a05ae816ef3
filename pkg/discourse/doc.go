// Package discourse provides types, interfaces, and helpers for working with
// the Discourse admin HTTP API.
//
// # Overview
//
// The discourse package defines the domain types (User, Category, Post,
// TopicSummary, Honeypot) and the interfaces for resource-oriented clients
// (UsersClient, CategoriesClient, TopicsClient, PostsClient,
// SiteSettingsClient). A concrete implementation is provided by the
// discourseclient package. Most consumers should import discourseclient to
// construct a client and then use the interfaces exposed here.
//
// Getting a client
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
//	  cli, err := discourseclient.New(&discourse.Config{
//	    Host:   "forum.example.com",
//	    APIKey: "...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  res, err := cli.Users().LookupIDByUsername(ctx, "johndoe")
//	  if err != nil { log.Fatal(err) }
//	  if !res.Success { log.Println(res.Errors) }
//	}
//
// # Result envelopes
//
// Every operation returns a *Result[T] carrying Success, Errors and Data.
// Expected failures reported by the forum (unknown user, validation errors,
// rejected requests) are failed envelopes with a nil error. A non-nil error
// is reserved for faults: the request never got a response, or the response
// could not be interpreted. Those are *DomainError values wrapping the
// underlying *TransportError.
//
// Some successful envelopes carry warnings: check Errors even when Success
// is true.
package discourse
