package main

import (
	"flag"
	"fmt"

	"github.com/obsdesk/jwstatus/pkg/jwst"
	"github.com/obsdesk/jwstatus/pkg/status"
)

func main() {
	// Usage: go run main.go -pid 2733

	pidFlag := flag.String("pid", "", "JWST program ID")

	// Parse the command-line flags
	flag.Parse()

	if *pidFlag == "" {
		fmt.Println("Program ID is required. Please provide it using the -pid flag.")
		return
	}

	client := jwst.NewClient(nil)

	info, err := client.GetProposalInfo(*pidFlag)
	if err != nil {
		fmt.Println("Lookup failed:", err)
		return
	}
	fmt.Printf("%s %s: %s (PI: %s)\n", info.Type, *pidFlag, info.Title, info.PI)

	records, err := client.GetVisitStatus(*pidFlag)
	if err != nil {
		fmt.Println("Lookup failed:", err)
		return
	}

	filtered, _ := status.FilterByStatus(status.AllStatuses, records)
	status.PrintRecords(filtered, "ovstch", " ")
}
