// Copyright © 2025 The Ferrule authors

package main

import "github.com/ferrulelang/ferrule/cmd"

func main() {
	cmd.Execute()
}
