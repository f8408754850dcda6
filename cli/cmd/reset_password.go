package cmd

import (
	"fmt"

	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"
	"gastos/shared"

	"github.com/spf13/cobra"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [email]",
	Short: "Reset your password with an emailed pin",
	Args:  cobra.MaximumNArgs(1),
	Run:   resetPassword,
}

func init() {
	RootCmd.AddCommand(resetPasswordCmd)
}

func resetPassword(cmd *cobra.Command, args []string) {
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

	term.StartSpinner("")
	apiErr := lib.Client.CreatePasswordReset(email)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Println("📧 Enviamos um código de verificação para o seu e-mail")

	pin, err := term.GetRequiredUserStringInput("Código:")
	if err != nil {
		term.OutputErrorAndExit("Error reading pin: %v", err)
	}

	newPassword, err := term.GetUserPasswordInput("Nova senha:")
	if err != nil {
		term.OutputErrorAndExit("Error reading password: %v", err)
	}

	term.StartSpinner("")
	apiErr = lib.Client.ConfirmPasswordReset(shared.ConfirmPasswordResetRequest{
		Email:       email,
		Pin:         pin,
		NewPassword: newPassword,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Println("✅ Senha alterada. Faça login com a nova senha.")
}
