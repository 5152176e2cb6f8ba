package entities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ErrInvalidToolVersion is returned when the diff tool version is not a semantic version.
var ErrInvalidToolVersion = errors.New("invalid dependency-tree-diff version")

// ActionsEnvironment is the subset of the GitHub Actions runner environment the tool reads.
type ActionsEnvironment struct {
	ServerURL   string `env:"GITHUB_SERVER_URL,default=https://github.com"`
	APIURL      string `env:"GITHUB_API_URL,default=https://api.github.com"`
	Repository  string `env:"GITHUB_REPOSITORY"`
	EventName   string `env:"GITHUB_EVENT_NAME"`
	EventPath   string `env:"GITHUB_EVENT_PATH"`
	RunnerTemp  string `env:"RUNNER_TEMP"`
	RunnerDebug string `env:"RUNNER_DEBUG"`
	StepSummary string `env:"GITHUB_STEP_SUMMARY"`
	OutputPath  string `env:"GITHUB_OUTPUT"`
}

// Debug reports whether the runner asked for debug logging.
func (e ActionsEnvironment) Debug() bool {
	return e.RunnerDebug == "1"
}

// Settings holds the action inputs. Values come from the INPUT_* variables
// set by the runner, then from the optional configuration file.
type Settings struct {
	IncludeProjectRegex string   `env:"INPUT_INCLUDE_PROJECT_REGEX" yaml:"include_project_regex"`
	ExcludeProjectRegex string   `env:"INPUT_EXCLUDE_PROJECT_REGEX" yaml:"exclude_project_regex"`
	IncludeRootProject  bool     `env:"INPUT_INCLUDE_ROOT_PROJECT,default=true" yaml:"include_root_project"`
	Configurations      []string `yaml:"configurations"`
	Token               string   `env:"INPUT_TOKEN" yaml:"token"`
	ToolVersion         string   `env:"INPUT_TOOL_VERSION,default=1.2.1" yaml:"tool_version"`
	PostPRComment       bool     `env:"INPUT_POST_PR_COMMENT,default=false" yaml:"post_pr_comment"`
	UpdatePRBody        bool     `env:"INPUT_UPDATE_PR_BODY,default=false" yaml:"update_pr_body"`
	AssignLabel         bool     `env:"INPUT_ASSIGN_LABEL,default=false" yaml:"assign_label"`
	LabelName           string   `env:"INPUT_LABEL_NAME,default=dependencies-changed" yaml:"label_name"`

	RawConfigurations string `env:"INPUT_CONFIGURATIONS,default=runtimeClasspath" yaml:"-"`
	FallbackToken     string `env:"GITHUB_TOKEN" yaml:"-"`

	Environment ActionsEnvironment `yaml:"-"`
}

const inputPrefix = "INPUT_"

// nonEmptyLookuper treats empty variables as unset: the runner exports every
// declared input, blank ones included. Input names keep their hyphens when
// exported (INPUT_LABEL-NAME), which envconfig rejects in tags, so fields are
// tagged with underscores and the hyphenated name is tried first.
type nonEmptyLookuper struct {
	envconfig.Lookuper
}

func (l nonEmptyLookuper) Lookup(key string) (string, bool) {
	if name, found := strings.CutPrefix(key, inputPrefix); found && strings.Contains(name, "_") {
		if value, ok := l.lookupNonEmpty(inputPrefix + strings.ReplaceAll(name, "_", "-")); ok {
			return value, true
		}
	}
	return l.lookupNonEmpty(key)
}

func (l nonEmptyLookuper) lookupNonEmpty(key string) (string, bool) {
	value, ok := l.Lookuper.Lookup(key)
	return value, ok && value != ""
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads the inputs through lookuper and overlays the keys present
// in the configuration file at path, when path is not empty.
func NewSettings(ctx context.Context, lookuper envconfig.Lookuper, path string) (*Settings, error) {
	settings := &Settings{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   settings,
		Lookuper: nonEmptyLookuper{lookuper},
	}); err != nil {
		return nil, fmt.Errorf("failed to read action inputs: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if len(settings.Configurations) == 0 {
		settings.Configurations = splitMultiline(settings.RawConfigurations)
	}

	settings.Token = resolveToken(lookuper, settings.Token)
	if settings.Token == "" {
		settings.Token = settings.FallbackToken
	}

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// ProjectOptions returns the project selection part of the settings.
func (s *Settings) ProjectOptions() ProjectOptions {
	return ProjectOptions{
		IncludeProjectRegex: s.IncludeProjectRegex,
		ExcludeProjectRegex: s.ExcludeProjectRegex,
		IncludeRootProject:  s.IncludeRootProject,
		Configurations:      s.Configurations,
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	locations := []string{
		".",
		".github",
		".config",
	}

	patterns := []string{
		".depdiff.yaml",
		".depdiff.yml",
		"depdiff.yaml",
		"depdiff.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// splitMultiline mirrors the runner's multiline input handling: one value per
// line, blank lines dropped.
func splitMultiline(raw string) []string {
	var values []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(lookuper envconfig.Lookuper, raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val, ok := lookuper.Lookup(varName); ok && val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if len(settings.Configurations) == 0 {
		return errors.New("at least one configuration must be set")
	}

	for name, pattern := range map[string]string{
		"include_project_regex": settings.IncludeProjectRegex,
		"exclude_project_regex": settings.ExcludeProjectRegex,
	} {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%s is not a valid regular expression: %w", name, err)
		}
	}

	if !semver.IsValid(normalizeVersion(settings.ToolVersion)) {
		return fmt.Errorf("%w: %q", ErrInvalidToolVersion, settings.ToolVersion)
	}

	if settings.AssignLabel && strings.TrimSpace(settings.LabelName) == "" {
		return errors.New("label_name is required when assign_label is enabled")
	}

	return nil
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
