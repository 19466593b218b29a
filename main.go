// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"lightning/repl"
)

func main() {
	commonlog.Configure(0, nil)

	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("Welcome to the Lightning token REPL, %s!\n", name)
	fmt.Println("End a line with ':' to open a block; a blank line closes it.")
	repl.Start(os.Stdin, os.Stdout)
}
