package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gastos/cli/format"
	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"
	"gastos/shared"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var commentsCmd = &cobra.Command{
	Use:   "comments [post-index]",
	Short: "Show a post's comments",
	Args:  cobra.ExactArgs(1),
	Run:   comments,
}

var commentCmd = &cobra.Command{
	Use:   "comment [post-index] [text]",
	Short: "Comment on a post",
	Args:  cobra.RangeArgs(1, 2),
	Run:   comment,
}

var commentsWatchFlag bool

func init() {
	RootCmd.AddCommand(commentsCmd)
	RootCmd.AddCommand(commentCmd)

	commentsCmd.Flags().BoolVarP(&commentsWatchFlag, "watch", "w", false, "Watch comments update live")
}

func comments(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	post := mustResolvePost(args[0])

	if commentsWatchFlag {
		watchComments(post)
		return
	}

	// one-shot refresh path, same author resolution as the live stream
	collection := client.NewCommentCollection(lib.Client, post.Id, nil, nil)

	term.StartSpinner("")
	apiErr := collection.Refresh()
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	renderComments(post, collection.Records())
}

func renderComments(post *shared.Post, comments []*shared.Comment) {
	color.New(color.Bold, term.ColorHiCyan).Printf("💬 %s — %s\n\n", post.UserName, post.Description)

	if len(comments) == 0 {
		fmt.Println("🤷‍♂️ Nenhum comentário ainda")
		return
	}

	for _, c := range comments {
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(c.UserName), color.New(color.Faint).Sprint(format.DateTime(c.CreatedAt)))
		fmt.Printf("  %s\n\n", c.Text)
	}
}

func watchComments(post *shared.Post) {
	collection := client.NewCommentCollection(lib.Client, post.Id,
		func(postComments []*shared.Comment) {
			fmt.Print("\033[H\033[2J")
			renderComments(post, postComments)
		},
		func(err error) {
			term.OutputErrorAndExit("Stream error: %v", err)
		})

	if apiErr := collection.Start(); apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}
	defer collection.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}

func comment(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	post := mustResolvePost(args[0])

	var text string
	var err error

	if len(args) > 1 {
		text = args[1]
	} else {
		text, err = term.GetRequiredUserStringInput("Comentário:")
		if err != nil {
			term.OutputErrorAndExit("Error reading comment: %v", err)
		}
	}

	term.StartSpinner("")
	_, apiErr := lib.Client.CreateComment(post.Id, shared.CreateCommentRequest{Text: text})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Println("✅ Comentário publicado")
}
