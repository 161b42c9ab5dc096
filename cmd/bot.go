package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	botToken  string
	botChatID string
)

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Manage chat bot configurations",
}

// telegramBotCmd represents the telegram subcommand of bot
var telegramBotCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Register a Telegram bot and the chat it rolls for",
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)

		if botToken == "" && viper.GetString("telegram_token") == "" {
			fmt.Println("---")
			fmt.Println("Create your Telegram Bot & Get Token")
			fmt.Println("Open Telegram and search for the official @BotFather.")
			fmt.Println("Send the /newbot command and follow the prompts to name your bot and choose a unique username.")
			fmt.Println("BotFather will provide you with an HTTP API token. We will need it to configure jdice.")
			fmt.Println("---")
			fmt.Print("token: ")
			if scanner.Scan() {
				botToken = strings.TrimSpace(scanner.Text())
			}
		}

		if botChatID == "" && viper.GetString("telegram_chat_id") == "" {
			fmt.Println("---")
			fmt.Println("How to get your Telegram Chat ID:")
			fmt.Println("1. Add your bot to the group.")
			fmt.Println("2. Send a message in the group (e.g., /start).")
			fmt.Println("3. Access https://api.telegram.org/bot<TOKEN>/getUpdates in your browser.")
			fmt.Println("4. Look for the 'chat' object and its 'id' field (it usually starts with a minus sign).")
			fmt.Println("---")
			fmt.Print("chat_id: ")
			if scanner.Scan() {
				botChatID = strings.TrimSpace(scanner.Text())
			}
		}

		if botToken != "" {
			viper.Set("telegram_token", botToken)
		}
		if botChatID != "" {
			if _, err := strconv.ParseInt(botChatID, 10, 64); err != nil {
				fmt.Printf("Error: chat id %q is not a number\n", botChatID)
				os.Exit(1)
			}
			viper.Set("telegram_chat_id", botChatID)
		}

		if err := saveConfig(); err != nil {
			fmt.Printf("Error saving configuration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Telegram bot configuration saved. 'jdice repl' will start it.")
	},
}

// saveConfig writes viper settings to the config in use, creating
// $HOME/.jdice.yaml when there is none yet.
func saveConfig() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	if err := viper.SafeWriteConfig(); err == nil {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(home, ".jdice.yaml"))
}

func init() {
	rootCmd.AddCommand(botCmd)
	botCmd.AddCommand(telegramBotCmd)

	telegramBotCmd.Flags().StringVarP(&botToken, "token", "t", "", "Telegram bot API token")
	telegramBotCmd.Flags().StringVarP(&botChatID, "chat_id", "c", "", "Telegram group chat ID")
}
