// Command rawhttpd serves the demo /messages routes on RAWHTTP_PORT (9999 by default).
package main

import (
	"github.com/advdv/rawhttp/internal/example"
	"github.com/advdv/rawhttp/rawapp"
)

func main() {
	rawapp.NewApp[rawapp.BaseEnvironment](example.Register).Run()
}
