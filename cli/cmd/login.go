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

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to your account",
	Args:  cobra.MaximumNArgs(1),
	Run:   login,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of your account",
	Run:   logout,
}

func init() {
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
}

func login(cmd *cobra.Command, args []string) {
	var email string
	var err error

	if len(args) > 0 {
		email = args[0]
	} else {
		email, err = term.GetRequiredUserStringInput("E-mail:")
		if err != nil {
			term.OutputErrorAndExit("Error reading email: %v", err)
		}
	}

	password, err := term.GetUserPasswordInput("Senha:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	term.StartSpinner("")
	session, apiErr := lib.Client.SignIn(shared.SignInRequest{
		Email:    email,
		Password: password,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	lib.StoreSession()

	fmt.Printf("✅ Logado como %s\n", color.New(color.Bold, term.ColorHiGreen).Sprint(session.Email))
}

func logout(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	term.StartSpinner("")
	apiErr := lib.Client.SignOut()
	term.StopSpinner()

	if apiErr != nil {
		// the token may already be invalid server-side, clear locally anyway
		term.OutputSimpleError("%s", client.LocalizedErrorMessage(apiErr))
	}

	lib.ClearSession()

	fmt.Println("✅ Você saiu da sua conta")
}
