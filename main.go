package main

import "ledgerapi/cmd"

// @title Ledger API
// @version 1.0
// @description Personal finance ledger: accounts, transactions, transfers, debts, budgets and analytics
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cmd.Execute()
}
