// Package rawapptest provides test helpers for rawapp applications.
//
// It constructs the identical DI graph as [rawapp.NewApp] but uses [fxtest.App] which fails the test immediately
// on DI errors.
//
// Example:
//
//	rawapptest.SetBaseEnv(t)
//	var rt *rawapp.Runtime[rawapp.BaseEnvironment]
//	app := rawapptest.New[rawapp.BaseEnvironment](t, routing, rawapp.WithFx(fx.Populate(&rt)))
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package rawapptest

import (
	"testing"

	"github.com/advdv/rawhttp/rawapp"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing rawapp applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [rawapp.NewApp].
func New[E rawapp.Environment](t testing.TB, routing any, opts ...rawapp.Option) *App {
	return &App{App: fxtest.New(t, rawapp.FxOptions[E](routing, opts...)...)}
}
