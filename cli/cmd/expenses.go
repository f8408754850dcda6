package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gastos/cli/format"
	"gastos/cli/lib"
	"gastos/cli/term"
	"gastos/client"
	"gastos/shared"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage your expenses",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var expenseAddCmd = &cobra.Command{
	Use:   "add [description] [value]",
	Short: "Add an expense",
	Args:  cobra.MaximumNArgs(2),
	Run:   expenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your expenses",
	Run:   expenseList,
}

var expenseEditCmd = &cobra.Command{
	Use:   "edit [index]",
	Short: "Edit an expense by list index",
	Args:  cobra.ExactArgs(1),
	Run:   expenseEdit,
}

var expenseRmCmd = &cobra.Command{
	Use:   "rm [index]",
	Short: "Remove an expense by list index",
	Args:  cobra.ExactArgs(1),
	Run:   expenseRm,
}

var expenseWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch your expenses update live",
	Run:   expenseWatch,
}

var expenseDateFlag string

func init() {
	RootCmd.AddCommand(expenseCmd)
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseEditCmd)
	expenseCmd.AddCommand(expenseRmCmd)
	expenseCmd.AddCommand(expenseWatchCmd)

	expenseAddCmd.Flags().StringVarP(&expenseDateFlag, "date", "d", "", "Expense date (YYYY-MM-DD, default today)")
}

func expenseAdd(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	var description string
	var rawValue string
	var err error

	if len(args) > 0 {
		description = args[0]
	} else {
		description, err = term.GetRequiredUserStringInput("Descrição:")
		if err != nil {
			term.OutputErrorAndExit("Error reading description: %v", err)
		}
	}

	if len(args) > 1 {
		rawValue = args[1]
	} else {
		rawValue, err = term.GetRequiredUserStringInput("Valor:")
		if err != nil {
			term.OutputErrorAndExit("Error reading value: %v", err)
		}
	}

	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil || value <= 0 {
		term.OutputErrorAndExit("Valor inválido: %s", rawValue)
	}

	date := expenseDateFlag
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	term.StartSpinner("")
	expense, apiErr := lib.Client.CreateExpense(shared.CreateExpenseRequest{
		Description: description,
		Value:       value,
		Date:        date,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Printf("✅ Despesa adicionada: %s — %s\n",
		color.New(color.Bold).Sprint(expense.Description),
		color.New(color.Bold, term.ColorHiGreen).Sprint(format.CurrencyFromFloat(expense.Value)))
}

func expenseList(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	term.StartSpinner("")
	expenses, apiErr := lib.Client.ListExpenses()
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	renderExpenses(expenses)
}

func renderExpenses(expenses []*shared.Expense) {
	if len(expenses) == 0 {
		fmt.Println("🤷‍♂️ Nenhuma despesa registrada")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Descrição", "Valor", "Data"})

	for i, expense := range expenses {
		table.Append([]string{
			strconv.Itoa(i + 1),
			expense.Description,
			format.CurrencyFromFloat(expense.Value),
			format.Date(expense.Date),
		})
	}

	table.Render()

	total := client.ExpenseTotal(expenses)
	fmt.Printf("Total: %s\n", color.New(color.Bold, term.ColorHiYellow).Sprint(format.Currency(total)))
}

func expenseEdit(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	expense := mustResolveExpense(args[0])

	description, err := term.GetUserStringInput(fmt.Sprintf("Descrição [%s]:", expense.Description))
	if err != nil {
		term.OutputErrorAndExit("Error reading description: %v", err)
	}
	if description == "" {
		description = expense.Description
	}

	rawValue, err := term.GetUserStringInput(fmt.Sprintf("Valor [%s]:", format.CurrencyFromFloat(expense.Value)))
	if err != nil {
		term.OutputErrorAndExit("Error reading value: %v", err)
	}
	value := expense.Value
	if rawValue != "" {
		value, err = strconv.ParseFloat(rawValue, 64)
		if err != nil || value <= 0 {
			term.OutputErrorAndExit("Valor inválido: %s", rawValue)
		}
	}

	rawDate, err := term.GetUserStringInput(fmt.Sprintf("Data [%s]:", expense.Date.Format("2006-01-02")))
	if err != nil {
		term.OutputErrorAndExit("Error reading date: %v", err)
	}
	date := expense.Date.Format("2006-01-02")
	if rawDate != "" {
		date = rawDate
	}

	term.StartSpinner("")
	updated, apiErr := lib.Client.UpdateExpense(expense.Id, shared.UpdateExpenseRequest{
		Description: description,
		Value:       value,
		Date:        date,
	})
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Printf("✅ Despesa atualizada: %s — %s\n",
		color.New(color.Bold).Sprint(updated.Description),
		color.New(color.Bold, term.ColorHiGreen).Sprint(format.CurrencyFromFloat(updated.Value)))
}

func expenseRm(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	expense := mustResolveExpense(args[0])

	term.StartSpinner("")
	apiErr := lib.Client.DeleteExpense(expense.Id)
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	fmt.Printf("🗑️  Despesa removida: %s\n", color.New(color.Bold).Sprint(expense.Description))
}

// mustResolveExpense maps a 1-based list index onto the current expense list.
func mustResolveExpense(arg string) *shared.Expense {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 1 {
		term.OutputErrorAndExit("Índice inválido: %s", arg)
	}

	term.StartSpinner("")
	expenses, apiErr := lib.Client.ListExpenses()
	term.StopSpinner()

	if apiErr != nil {
		term.OutputErrorAndExit("%s", client.LocalizedErrorMessage(apiErr))
	}

	if index > len(expenses) {
		term.OutputErrorAndExit("Não existe despesa com índice %d", index)
	}

	return expenses[index-1]
}

func expenseWatch(cmd *cobra.Command, args []string) {
	lib.MustResolveAuth()

	collection := client.NewExpenseCollection(lib.Client,
		func(expenses []*shared.Expense) {
			fmt.Print("\033[H\033[2J")
			color.New(color.Bold, term.ColorHiCyan).Println("💸 Suas despesas (ao vivo — ctrl+c para sair)")
			fmt.Println()
			renderExpenses(expenses)
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
