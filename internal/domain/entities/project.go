package entities

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DependenciesTask is the Gradle task that prints a project's dependency tree.
	DependenciesTask = "dependencies"
	// RootProject names the root project in snapshot paths and logs.
	RootProject = "root"

	taskSeparator = ":"
)

// ProjectParser extracts project identifiers from the output of the build
// tool's project listing. Implementations must return identifiers in the order
// they appear and keep duplicates.
type ProjectParser interface {
	Parse(output string) []string
}

// gradleProjectPattern matches the nested project lines printed by
// `./gradlew projects`, e.g. "+--- Project ':app:core'". The root project is
// printed as "Root project 'name'" (lowercase), so it is never captured.
var gradleProjectPattern = regexp.MustCompile(`Project '(\S+)'`)

// GradleProjectParser scrapes the text report of `./gradlew projects`.
type GradleProjectParser struct{}

// NewGradleProjectParser creates the default ProjectParser.
func NewGradleProjectParser() ProjectParser {
	return &GradleProjectParser{}
}

// Parse returns every quoted identifier following the literal "Project '".
func (p *GradleProjectParser) Parse(output string) []string {
	projects := []string{}
	for _, match := range gradleProjectPattern.FindAllStringSubmatch(output, -1) {
		projects = append(projects, match[1])
	}
	return projects
}

// ProjectOptions selects which projects and configurations are resolved.
type ProjectOptions struct {
	IncludeProjectRegex string
	ExcludeProjectRegex string
	IncludeRootProject  bool
	Configurations      []string
}

// FilterProjects keeps the projects matching includePattern and then drops the
// ones matching excludePattern. An empty pattern disables that direction.
// Matching is unanchored and the relative order is preserved.
func FilterProjects(projects []string, includePattern, excludePattern string) ([]string, error) {
	result := projects

	if includePattern != "" {
		include, err := regexp.Compile(includePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include project regex %q: %w", includePattern, err)
		}
		result = selectProjects(result, func(project string) bool {
			return include.MatchString(project)
		})
	}

	if excludePattern != "" {
		exclude, err := regexp.Compile(excludePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude project regex %q: %w", excludePattern, err)
		}
		result = selectProjects(result, func(project string) bool {
			return !exclude.MatchString(project)
		})
	}

	return result, nil
}

func selectProjects(projects []string, keep func(string) bool) []string {
	selected := make([]string, 0, len(projects))
	for _, project := range projects {
		if keep(project) {
			selected = append(selected, project)
		}
	}
	return selected
}

// BuildTasks maps each project to its dependencies task. When includeRoot is
// set, the bare task for the root project comes first.
func BuildTasks(projects []string, includeRoot bool) []string {
	tasks := make([]string, 0, len(projects)+1)
	if includeRoot {
		tasks = append(tasks, DependenciesTask)
	}
	for _, project := range projects {
		tasks = append(tasks, project+taskSeparator+DependenciesTask)
	}
	return tasks
}

// ProjectOf is the inverse of BuildTasks.
func ProjectOf(task string) string {
	if task == DependenciesTask {
		return RootProject
	}
	return strings.TrimSuffix(task, taskSeparator+DependenciesTask)
}
