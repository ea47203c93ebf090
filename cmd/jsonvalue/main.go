// jsonvalue compiles json_value calls into dialect specific SQL.
package main

import (
	"os"

	"github.com/syssam/jsonvalue/cmd/jsonvalue/command"
)

func main() {
	os.Exit(command.Execute())
}
