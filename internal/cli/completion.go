package cli

import "github.com/spf13/cobra"

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for termout.

To load completions:

Bash:
  $ source <(termout completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ termout completion bash > /etc/bash_completion.d/termout
  # macOS:
  $ termout completion bash > $(brew --prefix)/etc/bash_completion.d/termout

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ termout completion zsh > "${fpath[1]}/_termout"

  # You may need to start a new shell for this setup to take effect.

Fish:
  $ termout completion fish | source

  # To load completions for each session, execute once:
  $ termout completion fish > ~/.config/fish/completions/termout.fish

PowerShell:
  PS> termout completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> termout completion powershell > termout.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	completionCmd.GroupID = "utilities"
	rootCmd.AddCommand(completionCmd)
}
