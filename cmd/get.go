package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsdesk/jwstatus/internal/utils"
	"github.com/obsdesk/jwstatus/pkg/jwst"
	"github.com/obsdesk/jwstatus/pkg/status"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <program-id>",
	Short: "Print the visit status table for a program",
	Long:  "Fetches the visit status report for a program and prints one line per visit.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		statusFilter, _ := cmd.Flags().GetString("status")
		outputFlags, _ := cmd.Flags().GetString("output")
		delimiter, _ := cmd.Flags().GetString("delimiter")

		applyProxy()

		client := jwst.NewClient(nil)
		if _, err := client.GetProposalInfo(args[0]); err != nil {
			if errors.Is(err, jwst.ErrNotFound) {
				fmt.Println("Program not found.")
				return
			}
			utils.Log.Fatal("Could not retrieve proposal info for program ", args[0], ": ", err)
		}

		records, err := client.GetVisitStatus(args[0])
		if err != nil {
			utils.Log.Fatal("Could not retrieve visit status for program ", args[0], ": ", err)
		}

		filtered, _ := status.FilterByStatus(statusFilter, records)
		status.PrintRecords(filtered, outputFlags, delimiter)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringP("status", "s", status.AllStatuses, "Only print visits with this exact status (default: all displayable visits)")
	getCmd.Flags().StringP("output", "o", "ovstch", "Output flags, one column per letter (Available: o=observation, v=visit, s=status, t=target, c=instrument, h=hours, b=start time, e=end time, p=plan window, r=repeat)")
	getCmd.Flags().StringP("delimiter", "d", " ", "Delimiter character used when printing multiple columns")
}
