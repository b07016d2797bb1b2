// Command hexdump displays file contents in hexadecimal, octal, binary or decimal.
package main

import "github.com/kalbasit/hexdump/internal/cli"

func main() {
	cli.Execute()
}
