package main

import (
	"github.com/LambdaTest/covgate/config"
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches command line flags to command
func AttachCLIFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringP("config", "c", "", "the config file to use")
	flags.BoolP("verbose", "", false, "Run in verbose mode")
	flags.String("logger", "zap", "Logger implementation, zap or logrus")
	flags.String("repo_root", ".", "Root of the repository checkout")
	flags.StringP("port", "p", "", "Port for the api server in serve mode")

	flags.String("source", "xcov", "Where the coverage report comes from: xcov, xccov or file")
	flags.String("tool_path", "", "Path to the xcov or xcrun binary")
	flags.String("scheme", "", "Xcode scheme")
	flags.String("workspace", "", "Xcode workspace")
	flags.String("project", "", "Xcode project")
	flags.String("derived_data_path", "", "Derived data path")
	flags.String("xccov_file_direct_path", "", "Path to an .xcresult bundle or .xccovreport")
	flags.String("report_path", "", "Previously generated JSON coverage report")
	flags.String("ignore_file_path", "", "Ignore file with glob patterns")
	flags.StringSlice("ignore_globs", nil, "Glob patterns of files to drop from the report")
	flags.StringSlice("include_targets", nil, "Targets to include")
	flags.StringSlice("exclude_targets", nil, "Targets to exclude")
	flags.Int(config.ThresholdFlag, 0, "Fail when overall coverage is below this percentage")
	flags.String("match_mode", "path", "How report files are matched to changed files: path or basename")
	flags.Duration("timeout", 0, "Timeout for external tools")
	flags.String("max_report_size", "", "Largest coverage report that will be decoded, e.g. 50MB")

	flags.String("changes", "git", "Changed file source: git, github or diff")
	flags.String("base_ref", "", "Base ref for git diff")
	flags.String("head_ref", "", "Head ref for git diff")
	flags.String("diff_file", "", "Unified diff of the pull request")

	flags.String("publisher", "stdout", "Where the summary goes: stdout, file or github")
	flags.StringP("output", "o", "", "Output file for the file publisher")
	flags.Bool("status", false, "Set a commit status on the pull request head")
	flags.String("owner", "", "Repository owner")
	flags.String("repo", "", "Repository name")
	flags.Int("pr", 0, "Pull request number")

	flags.Bool("archive", false, "Archive the filtered report")
}
