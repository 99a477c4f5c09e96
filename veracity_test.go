package veracity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/transport"
)

// newTestTransport serves the given handler from a local server and
// returns a transport client pointed at it
func newTestTransport(t *testing.T, handler http.Handler, opts ...transport.Option) *transport.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tc, err := transport.NewClient(server.URL, 5*time.Second, opts...)
	if err != nil {
		t.Fatalf("failed to create transport: %v", err)
	}
	return tc
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
