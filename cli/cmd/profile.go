package cmd

import (
	"fmt"

	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"
	"gastos/shared"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [post-index]",
	Short: "Show your profile, or the profile of a feed post's author",
	Args:  cobra.MaximumNArgs(1),
	Run:   profile,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile",
	Run:   profileSet,
}

func init() {
	RootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func profile(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	userId := lib.Client.Auth().UserId
	if len(args) > 0 {
		// view the author of a feed post
		userId = mustResolvePost(args[0]).UserId
	}

	term.StartSpinner("")
	user, apiErr := lib.Client.GetUser(userId)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}
	if user == nil {
		term.OutputErrorAndExit("Perfil não encontrado")
	}

	term.StartSpinner("")
	posts, apiErr := lib.Client.ListUserPosts(userId)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	renderProfile(user)
	fmt.Println()
	color.New(color.Bold, term.ColorHiCyan).Println("📝 Publicações")
	fmt.Println()
	renderFeed(posts)
}

func renderProfile(user *shared.User) {
	color.New(color.Bold, term.ColorHiCyan).Println("👤 " + user.Name)
	fmt.Printf("E-mail:   %s\n", user.Email)
	fmt.Printf("Telefone: %s\n", user.Phone)
	if user.ProfileImageUrl != nil {
		fmt.Printf("Foto:     %s\n", *user.ProfileImageUrl)
	}
}

func profileSet(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	term.StartSpinner("")
	current, apiErr := lib.Client.GetUser(lib.Client.Auth().UserId)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}
	if current == nil {
		term.OutputErrorAndExit("Perfil não encontrado")
	}

	name, err := term.GetUserStringInput(fmt.Sprintf("Nome [%s]:", current.Name))
	if err != nil {
		term.OutputErrorAndExit("Error reading name: %v", err)
	}
	if name == "" {
		name = current.Name
	}

	phone, err := term.GetUserStringInput(fmt.Sprintf("Telefone [%s]:", current.Phone))
	if err != nil {
		term.OutputErrorAndExit("Error reading phone: %v", err)
	}
	if phone == "" {
		phone = current.Phone
	}

	term.StartSpinner("")
	user, apiErr := lib.Client.UpdateProfile(shared.UpdateProfileRequest{
		Name:            name,
		Phone:           phone,
		ProfileImageUrl: current.ProfileImageUrl,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	lib.StoreSession()

	fmt.Printf("✅ Perfil atualizado: %s\n", color.New(color.Bold, term.ColorHiGreen).Sprint(user.Name))
}
