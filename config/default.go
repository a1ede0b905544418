package config

import (
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/spf13/viper"
)

func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("log.enable_console", true)
	v.SetDefault("log.console_json_format", false)
	v.SetDefault("log.console_level", "info")
	v.SetDefault("log.enable_file", false)
	v.SetDefault("log.file_json_format", true)
	v.SetDefault("log.file_level", "debug")
	v.SetDefault("log.file_location", "./covgate.log")
	v.SetDefault("logger", "zap")
	v.SetDefault("port", global.DefaultPort)
	v.SetDefault("verbose", false)
	v.SetDefault("repo_root", ".")
	v.SetDefault("source", "xcov")
	v.SetDefault("match_mode", "path")
	v.SetDefault("timeout", global.DefaultToolTimeout)
	v.SetDefault("max_report_size", global.DefaultMaxReportSize)
	v.SetDefault("ignore_file_path", global.DefaultIgnoreFile)
	v.SetDefault("ignore_globs", []string{})
	v.SetDefault("include_targets", []string{})
	v.SetDefault("exclude_targets", []string{})
	v.SetDefault("changes.source", "git")
	v.SetDefault("changes.base_ref", "origin/main")
	v.SetDefault("changes.head_ref", "HEAD")
	v.SetDefault("publisher.type", "stdout")
	v.SetDefault("publisher.sticky", true)
	v.SetDefault("publisher.status", false)
	v.SetDefault("github.api_url", "")
	v.SetDefault("github.pull_request", 0)
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.dir", global.DefaultArchiveDir)
	v.SetDefault("archive.azure.container_name", "coverage")
}
