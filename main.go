package main

import "github.com/ardiputra/expense-portal/cmd"

func main() {
	cmd.Execute()
}
