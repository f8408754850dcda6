package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"gastos/cli/format"
	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"
	"gastos/shared"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the social feed",
	Run:   feed,
}

var feedWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the feed update live",
	Run:   feedWatch,
}

func init() {
	RootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedWatchCmd)
}

func feed(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	renderFeed(fetchPosts())
}

// fetchPosts runs the one-shot refresh path, so author names are resolved
// the same way the live stream resolves them.
func fetchPosts() []*shared.Post {
	collection := client.NewPostCollection(lib.Client, nil, nil)

	term.StartSpinner("")
	apiErr := collection.Refresh()
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	return collection.Records()
}

func renderFeed(posts []*shared.Post) {
	if len(posts) == 0 {
		fmt.Println("🤷‍♂️ Nenhuma publicação ainda")
		return
	}

	for i, post := range posts {
		header := fmt.Sprintf("#%s %s", strconv.Itoa(i+1), post.UserName)
		color.New(color.Bold, term.ColorHiCyan).Println(header)
		fmt.Printf("  %s\n", post.Description)
		if post.Location != nil && *post.Location != "" {
			fmt.Printf("  📍 %s\n", *post.Location)
		}
		fmt.Printf("  ❤️  %d   💬 %d   %s\n", len(post.Likes), post.CommentCount, format.DateTime(post.CreatedAt))
		fmt.Println()
	}
}

func feedWatch(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	collection := client.NewPostCollection(lib.Client,
		func(posts []*shared.Post) {
			fmt.Print("\033[H\033[2J")
			color.New(color.Bold, term.ColorHiCyan).Println("📣 Feed (ao vivo — ctrl+c para sair)")
			fmt.Println()
			renderFeed(posts)
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

// mustResolvePost maps a 1-based feed index onto the current post list.
func mustResolvePost(arg string) *shared.Post {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 1 {
		term.OutputErrorAndExit("Índice inválido: %s", arg)
	}

	posts := fetchPosts()

	if index > len(posts) {
		term.OutputErrorAndExit("Não existe publicação com índice %d", index)
	}

	return posts[index-1]
}
