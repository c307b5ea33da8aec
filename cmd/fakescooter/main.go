// Command fakescooter serves an in-memory implementation of the courier/order API, so that
// the contract tests can be tried out without the real service.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/scooter-qa/courier-contract-tests/fakeapi"
	"github.com/scooter-qa/courier-contract-tests/framework"
)

const defaultPort = 8111

func main() {
	var port int
	var orders int
	var failLogin bool
	var verbose bool

	fs := pflag.NewFlagSet("fakescooter", pflag.ExitOnError)
	fs.IntVarP(&port, "port", "p", defaultPort, "port to listen on")
	fs.IntVar(&orders, "orders", 3, "number of orders present at startup")
	fs.BoolVar(&failLogin, "fail-login", false, "make every courier login fail with status 500")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	_ = fs.Parse(os.Args[1:])

	if port <= 0 || port > 65535 {
		fmt.Fprintf(os.Stderr, "invalid port: %d\n", port)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, "[fakescooter] ", log.LstdFlags)
	options := []fakeapi.Option{fakeapi.WithSeededOrders(orders)}
	if failLogin {
		options = append(options, fakeapi.WithFailingLogin())
	}
	if verbose {
		options = append(options, fakeapi.WithLogger(framework.LoggerWithPrefix(logger, "request: ")))
	}
	server := fakeapi.NewServer(options...)

	addr := fmt.Sprintf(":%d", port)
	logger.Printf("Listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logger.Fatal(err)
	}
}
