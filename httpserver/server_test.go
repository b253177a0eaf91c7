package httpserver_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/purposeinplay/go-money/httpserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestServer(t *testing.T) {
	t.Parallel()

	t.Run("ServesUntilContextDone", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "ok")
		})

		s := httpserver.New(zaptest.NewLogger(t), handler)

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)

		go func() {
			done <- s.Serve(ctx, ln)
		}()

		resp, err := http.Get("http://" + ln.Addr().String())
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", string(body))

		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("ShutdownDeadlineExceeded", func(t *testing.T) {
		t.Parallel()

		received := make(chan struct{})
		release := make(chan struct{})

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			close(received)
			<-release
		})

		s := httpserver.New(
			zaptest.NewLogger(t),
			handler,
			httpserver.WithShutdownTimeout(10*time.Millisecond),
		)

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)

		go func() {
			done <- s.Serve(ctx, ln)
		}()

		go func() {
			resp, err := http.Get("http://" + ln.Addr().String())
			if err == nil {
				_ = resp.Body.Close()
			}
		}()

		<-received

		cancel()

		err = <-done

		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
	})

	t.Run("ListenError", func(t *testing.T) {
		t.Parallel()

		s := httpserver.New(nil, nil, httpserver.WithAddress("invalid:address:1"))

		assert.Equal(t, "invalid:address:1", s.Addr())

		err := s.ListenAndServe(context.Background())

		assert.Error(t, err)
	})
}
