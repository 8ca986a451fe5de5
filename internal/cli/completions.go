package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// commonEncodings are offered for --encoding completion; any WHATWG label is accepted.
var commonEncodings = []string{"utf-8", "latin1", "windows-1252", "iso-8859-15", "shift_jis", "euc-jp", "gbk", "utf-16le", "utf-16be"}

// inputExtensions are offered for positional and --infile completion.
var inputExtensions = []string{"csv", "tsv", "tab", "gz", "zst"}

// completeInputFiles lets the shell complete delimited files and directories.
func completeInputFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return inputExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeEncodings provides shell completion for --encoding.
func completeEncodings(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, enc := range commonEncodings {
		if strings.HasPrefix(enc, strings.ToLower(toComplete)) {
			matches = append(matches, enc)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDelimiters provides shell completion for --delimiter.
func completeDelimiters(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{",\tcomma", ";\tsemicolon", "|\tpipe", `\t` + "\ttab"}, cobra.ShellCompDirectiveNoFileComp
}

// completeAuthMethods provides shell completion for --pg-auth.
func completeAuthMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"standard\tpassword in the URL", "aws\tRDS IAM token", "azure\tEntra ID token", "gcp\tCloud SQL IAM connector"}, cobra.ShellCompDirectiveNoFileComp
}
