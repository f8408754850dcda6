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

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Run:   register,
}

func init() {
	RootCmd.AddCommand(registerCmd)
}

func register(cmd *cobra.Command, args []string) {
	name, err := term.GetRequiredUserStringInput("Nome:")
	if err != nil {
		term.OutputErrorAndExit("Error reading name: %v", err)
	}

	email, err := term.GetRequiredUserStringInput("E-mail:")
	if err != nil {
		term.OutputErrorAndExit("Error reading email: %v", err)
	}

	phone, err := term.GetRequiredUserStringInput("Telefone:")
	if err != nil {
		term.OutputErrorAndExit("Error reading phone: %v", err)
	}

	password, err := term.GetUserPasswordInput("Senha:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	term.StartSpinner("")
	session, apiErr := lib.Client.CreateAccount(shared.CreateAccountRequest{
		Email:    email,
		Password: password,
		UserName: name,
		Phone:    phone,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	lib.StoreSession()

	fmt.Printf("✅ Conta criada. Bem-vindo, %s\n", color.New(color.Bold, term.ColorHiGreen).Sprint(session.UserName))
}
