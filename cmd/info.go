package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsdesk/jwstatus/internal/utils"
	"github.com/obsdesk/jwstatus/pkg/jwst"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <program-id>",
	Short: "Print the proposal metadata for a program",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		applyProxy()

		client := jwst.NewClient(nil)
		info, err := client.GetProposalInfo(args[0])
		if err != nil {
			if errors.Is(err, jwst.ErrNotFound) {
				fmt.Println("Program not found.")
				return
			}
			utils.Log.Fatal("Could not retrieve proposal info for program ", args[0], ": ", err)
		}

		fmt.Printf("%s %s\n", info.Type, args[0])
		fmt.Printf("PI: %s\n", info.PI)
		fmt.Printf("PI Institution: %s\n", info.PIInstitution)
		fmt.Printf("Program Title: %s\n", info.Title)
		fmt.Printf("Cycle: %d\n", info.Cycle)
		fmt.Printf("Allocation: %v hours\n", info.Allocation)
		fmt.Printf("Exclusive Period: %d months\n", info.ExclusivePeriod)
		fmt.Println("Program Contents:")
		fmt.Println(info.APT.Markdown())
		fmt.Println(info.PDF.Markdown())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
