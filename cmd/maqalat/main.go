// Command maqalat はアラビア語記事リーダーのAPIサーバーを起動する。
//
// サブコマンド:
//
//	serve        APIサーバーを起動する（既定）
//	migrate      PostgreSQLのマイグレーションを適用する
//	healthcheck  起動中のサーバーの /health を確認する
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/maqalat/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "maqalat: %v\n", err)
		os.Exit(1)
	}
}
