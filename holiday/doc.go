// Package holiday provides a client for the Holiday and Event API
// (https://apilayer.com/marketplace/checkiday-api).
//
// The API knows about thousands of holidays and observances. This package
// wraps its three endpoints: the events on a given date, the full details of
// one event, and a free text search.
//
// # Usage
//
// Create a client with your API key:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := holiday.NewClient("your-api-key", logger,
//		holiday.WithTimeout(5*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	events, err := client.GetEvents(ctx, holiday.GetEventsRequest{
//		Timezone: "America/New_York",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Today is %s! (%d/%d requests left)\n", events.Events[0].Name,
//		events.RateLimit.RemainingMonth, events.RateLimit.LimitMonth)
//
// A Client is immutable and can be shared by any number of goroutines.
// Nothing is cached or retried; every call is exactly one HTTP request.
//
// # Error Handling
//
// Arguments and configuration are checked before anything is sent:
//
//   - ErrInvalidConfig: empty API key or bad base URL
//   - ErrInvalidArgument: missing event id, empty search query, bad year range
//
// Non-2xx responses are returned as *APIError, which unwraps to one of
// ErrUnauthorized, ErrNotFound, ErrRateLimited, ErrBadRequest or ErrServer.
// A 2xx body that does not decode is a *DecodeError matching ErrDecode.
//
//	if errors.Is(err, holiday.ErrRateLimited) {
//		// out of quota for this month
//	}
//
//	var apiErr *holiday.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println(apiErr.StatusCode, apiErr.Message)
//	}
package holiday
