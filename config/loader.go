package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ThresholdFlag is bound by hand because an unchanged flag must leave the threshold unset.
const ThresholdFlag = "minimum_coverage_percentage"

// flagKeys maps CLI flag names to configuration keys when they differ.
var flagKeys = map[string]string{
	"changes":   "changes.source",
	"base_ref":  "changes.base_ref",
	"head_ref":  "changes.head_ref",
	"diff_file": "changes.diff_file",
	"publisher": "publisher.type",
	"output":    "publisher.output_file",
	"status":    "publisher.status",
	"owner":     "github.owner",
	"repo":      "github.repo",
	"pr":        "github.pull_request",
	"archive":   "archive.enabled",
}

// Load builds the configuration for cmd from flags, environment, the config file and defaults.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaultConfig(v)

	v.SetEnvPrefix(global.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	keys := knownKeys(reflect.TypeOf(Config{}), "")
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, errs.Config("binding environment", err)
		}
	}
	if err := v.BindEnv("github.token", envName("github.token"), "GITHUB_TOKEN"); err != nil {
		return nil, errs.Config("binding environment", err)
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, errs.Config("binding flags", err)
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(global.ConfigFileName)
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errs.Config("reading config file", err)
		}
	}

	if used := v.ConfigFileUsed(); used != "" {
		fileKeys, err := readFileKeys(used)
		if err != nil {
			return nil, err
		}
		if err := checkUnknownKeys(fileKeys, keys); err != nil {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.Config("decoding configuration", err)
	}

	if cmd.Flags().Changed(ThresholdFlag) {
		threshold, err := cmd.Flags().GetInt(ThresholdFlag)
		if err != nil {
			return nil, errs.Config("parsing "+ThresholdFlag, err)
		}
		cfg.MinimumCoveragePercentage = &threshold
	}

	applyCIEnvironment(cfg)
	return cfg, nil
}

func envName(key string) string {
	return global.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == ThresholdFlag {
			return
		}
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}

// readFileKeys returns the keys present in the config file alone.
func readFileKeys(path string) ([]string, error) {
	fv := viper.New()
	fv.SetConfigFile(path)
	if err := fv.ReadInConfig(); err != nil {
		return nil, errs.Config("reading config file", err)
	}
	return fv.AllKeys(), nil
}

// applyCIEnvironment fills pull request coordinates from the GitHub Actions environment.
func applyCIEnvironment(cfg *Config) {
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
			if parts := strings.SplitN(slug, "/", 2); len(parts) == 2 {
				if cfg.GitHub.Owner == "" {
					cfg.GitHub.Owner = parts[0]
				}
				if cfg.GitHub.Repo == "" {
					cfg.GitHub.Repo = parts[1]
				}
			}
		}
	}
	if cfg.GitHub.PullRequest == 0 {
		cfg.GitHub.PullRequest = pullRequestFromRef(os.Getenv("GITHUB_REF"))
	}
}

// pullRequestFromRef extracts the number from refs/pull/<n>/merge.
func pullRequestFromRef(ref string) int {
	parts := strings.Split(ref, "/")
	if len(parts) != 4 || parts[0] != "refs" || parts[1] != "pull" {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return n
}

// String renders the configuration for debug logs with secrets masked.
func (c *Config) String() string {
	masked := *c
	if masked.GitHub.Token != "" {
		masked.GitHub.Token = "****"
	}
	if masked.Archive.Azure.StorageAccessKey != "" {
		masked.Archive.Azure.StorageAccessKey = "****"
	}
	threshold := "none"
	if c.MinimumCoveragePercentage != nil {
		threshold = strconv.Itoa(*c.MinimumCoveragePercentage)
	}
	masked.MinimumCoveragePercentage = nil
	return fmt.Sprintf("%+v threshold=%s", masked, threshold)
}
