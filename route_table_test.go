package rawhttp_test

import (
	"context"
	"sync"
	"testing"

	"github.com/advdv/rawhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHandler(body string) rawhttp.HandlerFunc {
	return func(_ context.Context, w rawhttp.ResponseWriter, _ *rawhttp.Request) error {
		return w.WriteText(body)
	}
}

// serveBody runs h against a recorder and returns what it wrote.
func serveBody(t *testing.T, h rawhttp.Handler) string {
	t.Helper()

	rec := rawhttp.NewRecorder()
	require.NoError(t, h.ServeRaw(context.Background(), rec, rawhttp.NewRequest("GET", "/", "HTTP/1.1", nil, "")))

	return rec.Body()
}

func TestRouteTableResolve(t *testing.T) {
	table := rawhttp.NewRouteTable()
	table.HandleFunc("GET", "/messages", textHandler("get"))
	table.HandleFunc("POST", "/messages", textHandler("post"))

	tests := []struct {
		method, path string
		want         string
	}{
		{"GET", "/messages", "get"},
		{"POST", "/messages", "post"},
		{"PUT", "/messages", ""},
		{"GET", "/messages/", ""},
		{"GET", "/messages?x=1", ""},
		{"GET", "/Messages", ""},
		{"get", "/messages", ""},
		{"GET", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			h, ok := table.Resolve(tt.method, tt.path)
			if tt.want == "" {
				assert.False(t, ok)
				assert.Nil(t, h)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, serveBody(t, h))
		})
	}
}

func TestRouteTableOverwrite(t *testing.T) {
	logs := rawhttp.NewTestLogger(t)
	table := rawhttp.NewRouteTableWith(logs)
	table.HandleFunc("GET", "/messages", textHandler("first"))
	table.HandleFunc("POST", "/messages", textHandler("post"))
	assert.Equal(t, int64(0), logs.NumLogRouteReplaced)

	table.HandleFunc("GET", "/messages", textHandler("second"))

	h, ok := table.Resolve("GET", "/messages")
	require.True(t, ok)
	assert.Equal(t, "second", serveBody(t, h))
	assert.Len(t, table.Routes(), 2)
	assert.Equal(t, int64(1), logs.NumLogRouteReplaced)
}

func TestNewRouteTableWithNilLogger(t *testing.T) {
	table := rawhttp.NewRouteTableWith(nil)
	table.HandleFunc("GET", "/a", textHandler("a"))

	assert.NotPanics(t, func() {
		table.HandleFunc("GET", "/a", textHandler("b"))
	})
}

func TestRouteTableRoutes(t *testing.T) {
	table := rawhttp.NewRouteTable()
	table.HandleFunc("POST", "/messages", textHandler("a"))
	table.HandleFunc("GET", "/z", textHandler("b"))
	table.HandleFunc("GET", "/messages", textHandler("c"))

	assert.Equal(t, []rawhttp.Route{
		{Method: "GET", Path: "/messages"},
		{Method: "GET", Path: "/z"},
		{Method: "POST", Path: "/messages"},
	}, table.Routes())
	assert.Equal(t, "GET /z", table.Routes()[1].String())
}

func TestRouteTableReverse(t *testing.T) {
	table := rawhttp.NewRouteTable()

	t.Run("should reverse named routes", func(t *testing.T) {
		table.HandleFunc("GET", "/messages", textHandler("a"), "get-messages")

		res, err := table.Reverse("get-messages")
		require.NoError(t, err)
		assert.Equal(t, "/messages", res)
	})

	t.Run("should allow re-registering the same route under its name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			table.HandleFunc("GET", "/messages", textHandler("b"), "get-messages")
		})
	})

	t.Run("should panic if name is taken by another route", func(t *testing.T) {
		assert.PanicsWithValue(t, `rawhttp: route with name "get-messages" already exists`, func() {
			table.HandleFunc("POST", "/messages", textHandler("c"), "get-messages")
		})
	})

	t.Run("should error if reversing unknown name", func(t *testing.T) {
		_, err := table.Reverse("bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no route named: "bogus"`)
	})
}

func TestRouteTableSeal(t *testing.T) {
	table := rawhttp.NewRouteTable()
	table.HandleFunc("GET", "/a", textHandler("a"))
	require.False(t, table.Sealed())

	table.Seal()
	require.True(t, table.Sealed())

	assert.PanicsWithValue(t, "rawhttp: cannot modify a route table that is being served", func() {
		table.HandleFunc("GET", "/b", textHandler("b"))
	})

	_, ok := table.Resolve("GET", "/a")
	assert.True(t, ok)
}

func TestRouteTableConcurrentResolve(t *testing.T) {
	table := rawhttp.NewRouteTable()
	table.HandleFunc("GET", "/a", textHandler("a"))
	table.Seal()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, ok := table.Resolve("GET", "/a")
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}
