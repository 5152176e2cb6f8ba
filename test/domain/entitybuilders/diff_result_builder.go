//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/depdiff/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DiffResultBuilder helps create test diff results with a fluent interface.
type DiffResultBuilder struct {
	*testkit.BaseBuilder
	project       string
	configuration string
	result        string
}

// NewDiffResultBuilder creates a new diff result builder with sensible defaults.
func NewDiffResultBuilder() *DiffResultBuilder {
	return &DiffResultBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		project:       ":app",
		configuration: "runtimeClasspath",
		result:        "-\\--- com.example:lib:1.0\n+\\--- com.example:lib:2.0",
	}
}

// WithProject sets the project directory name.
func (b *DiffResultBuilder) WithProject(project string) *DiffResultBuilder {
	b.project = project
	return b
}

// WithConfiguration sets the configuration name.
func (b *DiffResultBuilder) WithConfiguration(configuration string) *DiffResultBuilder {
	b.configuration = configuration
	return b
}

// WithResult sets the diff tool output.
func (b *DiffResultBuilder) WithResult(result string) *DiffResultBuilder {
	b.result = result
	return b
}

// Build creates the diff result (satisfies testkit.Builder interface).
func (b *DiffResultBuilder) Build() interface{} {
	return b.BuildDiffResult()
}

// BuildDiffResult creates the diff result with a concrete return type.
func (b *DiffResultBuilder) BuildDiffResult() entities.DiffResult {
	return entities.DiffResult{
		Project:       b.project,
		Configuration: b.configuration,
		Result:        b.result,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DiffResultBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.project = ":app"
	b.configuration = "runtimeClasspath"
	b.result = "-\\--- com.example:lib:1.0\n+\\--- com.example:lib:2.0"
	return b
}

// Clone creates a deep copy of the DiffResultBuilder.
func (b *DiffResultBuilder) Clone() testkit.Builder {
	return &DiffResultBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		project:       b.project,
		configuration: b.configuration,
		result:        b.result,
	}
}
