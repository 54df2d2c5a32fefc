/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/masnyjimmy/qforms/cmd"

func main() {
	cmd.Execute()
}
