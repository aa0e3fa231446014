package dispatcher_test

import "context"

func testContext() context.Context {
	return context.Background()
}
