// Package ksp provides a client for the BugBountyKE-KSP publishing
// platform API.
//
// The client authenticates with a bearer API key, verifies that key
// eagerly at construction, and exposes operations to publish, fetch, and
// delete articles, including multipart image upload.
//
// # Usage
//
// Create a client with your API key; construction fails fast when the
// key is malformed, rejected by the server, or the server is
// unreachable:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := ksp.NewClient("sk_live_...", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.PublishArticle(ctx, ksp.PublishRequest{
//		Title:   "SQL injection in the billing portal",
//		Content: markdown,
//		Images:  map[string][]byte{"poc.png": pocBytes},
//	})
//
// # Error Handling
//
// Every failure surfaces as a *ksp.Error with a Kind discriminator:
//
//	var apiErr *ksp.Error
//	if errors.As(err, &apiErr) {
//		switch apiErr.Kind {
//		case ksp.KindRateLimit:
//			// back off and retry later
//		case ksp.KindAuthentication:
//			// rotate the key
//		}
//	}
//
// The client makes exactly one attempt per operation. Retry, backoff,
// and response caching are left to the caller.
package ksp
