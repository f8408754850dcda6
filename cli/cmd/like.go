package cmd

import (
	"fmt"

	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"

	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like [post-index]",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	Run:   like,
}

func init() {
	RootCmd.AddCommand(likeCmd)
}

func like(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	post := mustResolvePost(args[0])

	term.StartSpinner("")
	res, apiErr := lib.Client.ToggleLike(post.Id)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	if res.Liked {
		fmt.Printf("❤️  Você curtiu a publicação (%d curtidas)\n", len(res.Likes))
	} else {
		fmt.Printf("💔 Você removeu a curtida (%d curtidas)\n", len(res.Likes))
	}
}
