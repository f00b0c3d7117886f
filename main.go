package main

import (
	"github.com/obsdesk/jwstatus/cmd"
)

func main() {
	cmd.Execute()
}
