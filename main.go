/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/jdice/cmd"

func main() {
	cmd.Execute()
}
