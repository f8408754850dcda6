package cmd

import (
	"fmt"

	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"
	"gastos/shared"

	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post [description]",
	Short: "Publish a post to the feed",
	Args:  cobra.MaximumNArgs(1),
	Run:   post,
}

var postLocationFlag string
var postImageUrlFlag string

func init() {
	RootCmd.AddCommand(postCmd)

	postCmd.Flags().StringVarP(&postLocationFlag, "location", "l", "", "Location tag for the post")
	postCmd.Flags().StringVar(&postImageUrlFlag, "image-url", "", "Image URL for the post")
}

func post(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	var description string
	var err error

	if len(args) > 0 {
		description = args[0]
	} else {
		description, err = term.GetRequiredUserStringInput("Descrição:")
		if err != nil {
			term.OutputErrorAndExit("Error reading description: %v", err)
		}
	}

	req := shared.CreatePostRequest{Description: description}
	if postLocationFlag != "" {
		req.Location = &postLocationFlag
	}
	if postImageUrlFlag != "" {
		req.ImageUrl = &postImageUrlFlag
	}

	term.StartSpinner("")
	_, apiErr := lib.Client.CreatePost(req)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Println("✅ Publicado no feed")
}
