package commands

// FindTaggedComment exports findTaggedComment for testing.
var FindTaggedComment = findTaggedComment //nolint:gochecknoglobals // test export
