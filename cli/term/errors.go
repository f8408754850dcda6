package term

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func OutputSimpleError(msg string, args ...interface{}) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintln(os.Stderr, color.New(ColorHiRed, color.Bold).Sprint("🚨 "+msg))
}

func OutputErrorAndExit(msg string, args ...interface{}) {
	StopSpinner()
	OutputSimpleError(msg, args...)
	os.Exit(1)
}

func OutputNotSignedInErrorAndExit() {
	StopSpinner()
	fmt.Fprintln(os.Stderr, color.New(ColorHiRed, color.Bold).Sprint("🚨 Você não está logado"))
	fmt.Fprintf(os.Stderr, "Use %s para entrar ou %s para criar uma conta\n",
		color.New(color.Bold, ColorHiCyan).Sprint("gastos login"),
		color.New(color.Bold, ColorHiCyan).Sprint("gastos register"))
	os.Exit(1)
}
