// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the secureblog HTTP API.
//
// # Commands
//
//	secureblog            same as "serve"
//	secureblog serve      run migrations, then serve HTTP until SIGINT/SIGTERM
//	secureblog migrate up apply pending schema migrations and exit
//	secureblog seed       insert the demo users and posts (idempotent)
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
